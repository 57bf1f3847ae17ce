package notifier

import (
	"encoding/json"
	"fmt"
	"io"

	"StockDashboard/internal/model"

	"github.com/charmbracelet/glamour"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatPlain    = "plain"
	FormatJSON     = "json"
)

// Options controls how a dashboard is written.
type Options struct {
	Format string // markdown (terminal), plain (raw markdown) or json
	Style  string // glamour style; empty or "auto" detects the terminal
	Tail   int
}

// Render writes d to w.
func Render(w io.Writer, d *model.Dashboard, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatPlain:
		_, err := io.WriteString(w, FormatReport(d, opts.Tail))
		return err
	case FormatMarkdown, "":
		out, err := renderTerminal(FormatReport(d, opts.Tail), opts.Style)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

func renderTerminal(md, style string) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(120))
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
