package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	lightweaver "github.com/Oelderoth/LightWeaver-Module"
)

// previewRate limits how often the terminal preview is redrawn
const previewRate = 50 * time.Millisecond

// cell is the text drawn for a single pixel, only its background is visible
const cell = "  "

// newPreviewRenderer returns a renderer for msgV that always emits 24 bit color,
// the preview is frequently piped and would otherwise be detected as colorless
func newPreviewRenderer(msgV io.Writer) (r *lipgloss.Renderer) {
	r = lipgloss.NewRenderer(msgV)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

// renderPreview draws the frame, brightness applied, as a row of colored cells.
// The cursor is returned to the start of the line so each frame overwrites the last
func renderPreview(r *lipgloss.Renderer, frame *lightweaver.Frame) string {
	sb := strings.Builder{}
	sb.WriteString("\r")
	for _, p := range frame.Scaled() {
		sb.WriteString(r.NewStyle().Background(lipgloss.Color(p.Rgba().Hex())).Render(cell))
	}
	fmt.Fprintf(&sb, " %3d", frame.Brightness)
	return sb.String()
}

func runPreview(subscribeC chan chan *lightweaver.Frame, msgV io.Writer, quitC <-chan struct{}) {

	frameC := make(chan *lightweaver.Frame, 1)
	defer close(frameC)
	subscribeC <- frameC

	r := newPreviewRenderer(msgV)
	lastDraw := time.Time{}

	for {
		select {
		case frame := <-frameC:
			if frame == nil || msgV == nil || time.Since(lastDraw) < previewRate {
				continue
			}
			lastDraw = time.Now()
			fmt.Fprint(msgV, renderPreview(r, frame))
		case <-quitC:
			if msgV != nil {
				fmt.Fprintln(msgV)
			}
			return
		}
	}
}
