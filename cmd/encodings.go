package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/charcode/internal/charcode"
	"github.com/zjrosen/charcode/internal/ui/markdown"
)

const (
	encodingsSample = "あ"
	encodingsWidth  = 80
)

var encodingsPlain bool

var encodingsCmd = &cobra.Command{
	Use:   "encodings",
	Short: "List the supported encodings",
	Long: `List the encodings the status bar can show, in picker order, with the
status text each one produces for a sample character.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		md, err := encodingsMarkdown()
		if err != nil {
			return err
		}
		return writeEncodings(cmd.OutOrStdout(), md, encodingsPlain, cfg.UI.MarkdownStyle)
	},
}

func init() {
	encodingsCmd.Flags().BoolVar(&encodingsPlain, "plain", false, "print raw markdown")
	rootCmd.AddCommand(encodingsCmd)
}

func encodingsMarkdown() (string, error) {
	resolver := charcode.NewResolver(charcode.NewTextConverter())
	sample := charcode.CaretTextFromString(encodingsSample)

	var b strings.Builder
	b.WriteString("# Encodings\n\n")
	b.WriteString("| Name | Shows | Sample (" + encodingsSample + ") |\n")
	b.WriteString("|------|-------|--------|\n")
	for _, enc := range charcode.Encodings() {
		status, err := resolver.BuildStatusText(sample, enc)
		if err != nil {
			return "", fmt.Errorf("resolving sample for %s: %w", enc, err)
		}
		fmt.Fprintf(&b, "| %s | %s | `%s` |\n", enc, enc.Description(), status)
	}
	fmt.Fprintf(&b, "\nStrategies are tried in order: %s.\n", strings.Join(resolver.Strategies(), ", "))
	return b.String(), nil
}

func writeEncodings(w io.Writer, md string, plain bool, style string) error {
	if plain {
		_, err := io.WriteString(w, md)
		return err
	}

	r, err := markdown.New(encodingsWidth, style)
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
