package styles

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid an import cycle.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// Presets are the built-in themes; "default" leaves the package colors.
var Presets = map[string]map[ColorToken]string{
	"default": {},
	"high-contrast": {
		TokenTextPrimary:   "#FFFFFF",
		TokenTextMuted:     "#BBBBBB",
		TokenCaret:         "#FFFF00",
		TokenStatusBarBg:   "#000000",
		TokenStatusBarFg:   "#FFFFFF",
		TokenStatusCode:    "#00FFFF",
		TokenOverlayBorder: "#FFFFFF",
	},
	"nord": {
		TokenTextPrimary:   "#D8DEE9",
		TokenTextMuted:     "#4C566A",
		TokenCaret:         "#88C0D0",
		TokenStatusBarBg:   "#3B4252",
		TokenStatusBarFg:   "#ECEFF4",
		TokenStatusCode:    "#EBCB8B",
		TokenOverlayBorder: "#81A1C1",
	},
}

// ApplyTheme applies the preset, then individual overrides, then rebuilds
// the exported styles.
func ApplyTheme(cfg ThemeConfig) error {
	colors := map[ColorToken]string{}

	if cfg.Preset != "" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset)
	}

	for key, value := range cfg.Colors {
		if err := ValidateColor(key, value); err != nil {
			return err
		}
		colors[ColorToken(key)] = value
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

// ValidateColor checks that key is a known token and value a hex color.
func ValidateColor(key, value string) error {
	if !isValidToken(ColorToken(key)) {
		return fmt.Errorf("unknown color token: %s", key)
	}
	if !isValidHexColor(value) {
		return fmt.Errorf("invalid hex color for %s: %s", key, value)
	}
	return nil
}

func applyColors(colors map[ColorToken]string) {
	targets := map[ColorToken]*lipgloss.AdaptiveColor{
		TokenTextPrimary:   &TextPrimaryColor,
		TokenTextMuted:     &TextMutedColor,
		TokenCaret:         &CaretColor,
		TokenLineNumber:    &LineNumberColor,
		TokenStatusBarFg:   &StatusBarFgColor,
		TokenStatusBarBg:   &StatusBarBgColor,
		TokenStatusCode:    &StatusCodeColor,
		TokenOverlayTitle:  &OverlayTitleColor,
		TokenOverlayBorder: &OverlayBorderColor,
		TokenSelection:     &SelectionIndicatorColor,
		TokenToastSuccess:  &ToastBorderSuccessColor,
		TokenToastError:    &ToastBorderErrorColor,
		TokenToastInfo:     &ToastBorderInfoColor,
		TokenStatusWarning: &StatusWarningColor,
		TokenStatusError:   &StatusErrorColor,
	}
	for token, hex := range colors {
		if target, ok := targets[token]; ok {
			*target = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
}

// isValidHexColor accepts #RGB and #RRGGBB.
func isValidHexColor(s string) bool {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 3 && len(hex) != 6) {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 32)
	return err == nil
}
