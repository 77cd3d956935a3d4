package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// Table writes rows under header: a box-drawn table in text mode and a
// markdown table otherwise. Callers render JSON themselves.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()

	h := make(table.Row, len(header))
	for i, col := range header {
		h[i] = col
	}
	t.AppendHeader(h)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeText {
		t.SetStyle(table.StyleLight)
		r.Println(t.Render())
		return
	}
	r.Println(t.RenderMarkdown())
	r.Println()
}
