package tui

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/lumenpage/materials-cli/internal/api"
	"github.com/lumenpage/materials-cli/internal/tui/config"
	"github.com/lumenpage/materials-cli/internal/tui/theme"
	"github.com/lumenpage/materials-cli/internal/utils"
)

// previewDialog holds a rendered terminal preview of a material image.
type previewDialog struct {
	title string
	body  string
}

// render draws the preview box. Any key closes it.
func (d *previewDialog) render(maxWidth int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.ColorBrightCyan)).
		Render(fmt.Sprintf("🖼  %s", d.title))

	hint := theme.CreateSecondaryTextStyle().Render("press any key to close")

	content := lipgloss.JoinVertical(lipgloss.Center, title, "", d.body, "", hint)

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ColorBrightCyan)).
		Padding(1, 2)
	if maxWidth > 8 {
		style = style.MaxWidth(maxWidth - 4)
	}
	return style.Render(content)
}

// openPreview downloads the material image and renders it as halfblock
// cells for the terminal.
func (m *PickerModel) openPreview(material api.Material) tea.Cmd {
	client := m.client
	ref := material.URL
	title := material.Filename

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		data, err := client.DownloadImage(ctx, ref)
		if err != nil {
			return previewReadyMsg{err: err}
		}

		// A misconfigured server can hand back HTML with a 200. Sniff the
		// bytes before handing them to the decoder. XML passes through so
		// SVGs reach the decoder's unsupported-format error instead.
		sniffed := http.DetectContentType(data)
		if !utils.IsImageType(sniffed) && !strings.Contains(sniffed, "xml") {
			return previewReadyMsg{err: fmt.Errorf("not an image: server returned %s", sniffed)}
		}

		img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
		if err != nil {
			// SVG and friends have no registered decoder.
			return previewReadyMsg{err: fmt.Errorf("unsupported preview format: %w", err)}
		}

		// Each text row holds two pixel rows, so the pixel budget is twice
		// the row budget.
		fitted := imaging.Fit(img, config.PreviewMaxColumns, config.PreviewMaxRows*2, imaging.Lanczos)
		return previewReadyMsg{title: title, body: renderHalfBlocks(fitted)}
	}
}

// renderHalfBlocks converts an image to colored ▀ cells, top pixel as
// foreground and bottom pixel as background.
func renderHalfBlocks(img image.Image) string {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var b strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			top := hexColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))

			cell := lipgloss.NewStyle().Foreground(lipgloss.Color(top))
			if y+1 < height {
				bottom := hexColor(img.At(bounds.Min.X+x, bounds.Min.Y+y+1))
				cell = cell.Background(lipgloss.Color(bottom))
			}
			b.WriteString(cell.Render("▀"))
		}
		if y+2 < height {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// hexColor converts a pixel to a #RRGGBB string.
func hexColor(c color.Color) string {
	r, g, bl, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", uint8(r>>8), uint8(g>>8), uint8(bl>>8))
}
