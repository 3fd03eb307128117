package ui

import (
	"fmt"
	"io"

	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/ports"
)

// Output formats supported by Presenter
const (
	FormatJSON   = "json"
	FormatStatus = "status"
	FormatWidget = "widget"
)

// Presenter writes rendered payloads to a writer
type Presenter struct {
	format string
	out    io.Writer
}

var _ ports.Presenter = (*Presenter)(nil)

// NewPresenter creates a Presenter for one of the Format* values
func NewPresenter(out io.Writer, format string) (*Presenter, error) {
	switch format {
	case FormatJSON, FormatStatus, FormatWidget:
	case "":
		format = FormatWidget
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	return &Presenter{format: format, out: out}, nil
}

// Present implements ports.Presenter
func (p *Presenter) Present(payload domain.WidgetPayload) error {
	var text string
	switch p.format {
	case FormatJSON:
		data, err := RenderJSON(payload)
		if err != nil {
			return err
		}
		text = string(data)
	case FormatStatus:
		text = RenderStatusLine(payload)
	default:
		text = RenderWidget(payload)
	}

	if _, err := fmt.Fprintln(p.out, text); err != nil {
		return fmt.Errorf("failed to write widget: %w", err)
	}
	return nil
}
