package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens users can override under theme.colors.
const (
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextMuted     ColorToken = "text.muted"
	TokenCaret         ColorToken = "caret"
	TokenLineNumber    ColorToken = "line.number"
	TokenStatusBarFg   ColorToken = "statusbar.fg"
	TokenStatusBarBg   ColorToken = "statusbar.bg"
	TokenStatusCode    ColorToken = "statusbar.code"
	TokenOverlayTitle  ColorToken = "overlay.title"
	TokenOverlayBorder ColorToken = "overlay.border"
	TokenSelection     ColorToken = "selection.indicator"
	TokenToastSuccess  ColorToken = "toast.success"
	TokenToastError    ColorToken = "toast.error"
	TokenToastInfo     ColorToken = "toast.info"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"
)

// AllTokens returns every themeable token.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary, TokenTextMuted, TokenCaret, TokenLineNumber,
		TokenStatusBarFg, TokenStatusBarBg, TokenStatusCode,
		TokenOverlayTitle, TokenOverlayBorder, TokenSelection,
		TokenToastSuccess, TokenToastError, TokenToastInfo,
		TokenStatusWarning, TokenStatusError,
	}
}

func isValidToken(t ColorToken) bool {
	for _, known := range AllTokens() {
		if known == t {
			return true
		}
	}
	return false
}
