package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/charcode/internal/charcode"
	"github.com/zjrosen/charcode/internal/log"
	"github.com/zjrosen/charcode/internal/status"
)

var (
	inspectAll    bool
	inspectOffset int
	inspectUnits  string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [text]",
	Short: "Print the status text for a caret position",
	Long: `Resolve the character at a caret position without opening the viewer.

The caret text is the first two UTF-16 code units of [text] starting at
--offset. Use --units to pass raw code units instead, which allows lone
surrogates. Nothing is printed when the caret text is empty.

Examples:
  # Status under the default encoding
  charcode inspect "ポ"

  # Every encoding, one per line
  charcode inspect --all "𩸽"

  # Second character of a string
  charcode inspect -e SJIS --offset 1 "aあ"

  # A lone high surrogate followed by "A"
  charcode inspect --units D867,0041`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectAll, "all", false, "print one line per encoding")
	inspectCmd.Flags().IntVar(&inspectOffset, "offset", 0, "UTF-16 offset of the caret into text")
	inspectCmd.Flags().StringVar(&inspectUnits, "units", "", "comma separated hex code units, e.g. D867,DE3D")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	log.InitWriter(nil)

	text, err := inspectCaretText(args)
	if err != nil {
		return err
	}

	targets, err := inspectTargets()
	if err != nil {
		return err
	}

	provider, err := newTracingProvider(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	svc := newStatusService(cfg, provider.Tracer())
	return printStatuses(cmd.Context(), cmd.OutOrStdout(), svc, text, targets)
}

func inspectCaretText(args []string) (charcode.CaretText, error) {
	if inspectUnits != "" {
		if len(args) > 0 {
			return charcode.CaretText{}, fmt.Errorf("--units and a text argument are mutually exclusive")
		}
		units, err := parseUnits(inspectUnits)
		if err != nil {
			return charcode.CaretText{}, err
		}
		return charcode.CaretTextFromUnits(units...), nil
	}

	if len(args) == 0 {
		return charcode.CaretText{}, nil
	}
	return caretTextAt(args[0], inspectOffset)
}

func inspectTargets() ([]charcode.Encoding, error) {
	if inspectAll {
		return charcode.Encodings(), nil
	}
	enc, err := charcode.ParseEncoding(viper.GetString("encoding"))
	if err != nil {
		return nil, err
	}
	return []charcode.Encoding{enc}, nil
}

// caretTextAt returns the caret text at a UTF-16 offset into s. Offsets
// past the end give an empty caret text.
func caretTextAt(s string, offset int) (charcode.CaretText, error) {
	if offset < 0 {
		return charcode.CaretText{}, fmt.Errorf("offset must not be negative: %d", offset)
	}
	units := utf16.Encode([]rune(s))
	if offset >= len(units) {
		return charcode.CaretText{}, nil
	}
	return charcode.CaretTextFromUnits(units[offset:]...), nil
}

// parseUnits parses "D867,DE3D". Each unit may carry a 0x or U+ prefix.
func parseUnits(s string) ([]uint16, error) {
	parts := strings.Split(s, ",")
	units := make([]uint16, 0, len(parts))
	for _, part := range parts {
		p := strings.TrimSpace(part)
		p = strings.TrimPrefix(strings.TrimPrefix(p, "0x"), "0X")
		p = strings.TrimPrefix(strings.TrimPrefix(p, "U+"), "u+")
		v, err := strconv.ParseUint(p, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid code unit %q: %w", strings.TrimSpace(part), err)
		}
		units = append(units, uint16(v))
	}
	return units, nil
}

func printStatuses(ctx context.Context, w io.Writer, svc *status.Service, text charcode.CaretText, targets []charcode.Encoding) error {
	for _, target := range targets {
		res, err := svc.Refresh(ctx, text, target)
		if err != nil {
			return err
		}
		if res.Empty() {
			continue
		}
		if _, err := fmt.Fprintln(w, res.Status); err != nil {
			return err
		}
	}
	return nil
}
