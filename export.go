package main

import (
	"bufio"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	headerFill = color.RGBA{R: 0xe8, G: 0xee, B: 0xf7, A: 0xff}
	gridLine   = color.RGBA{R: 0xc8, G: 0xcc, B: 0xd2, A: 0xff}
)

// ExportPNG draws the table as it is laid out now: current column order,
// live widths and formatted cells. Widths are pixel units, so one unit is
// one image pixel.
func (g *Grid) ExportPNG(id TableID, filename string) error {
	t := g.table(id)
	if t == nil {
		return fmt.Errorf("unknown table %q", id)
	}
	if len(t.display) == 0 {
		return ErrNoRows
	}

	// Character cell dimensions (pixels per character)
	charWidth := float64(pxPerCell)
	charHeight := 16.0
	rowHeight := charHeight + 4

	widths := make([]float64, t.layout.Len())
	imageWidth := 0.0
	for i := range widths {
		widths[i] = float64(g.EffectiveWidth(id, i))
		imageWidth += widths[i]
	}
	imageHeight := rowHeight * float64(len(t.display)+1)

	dc := gg.NewContext(int(imageWidth)+1, int(imageHeight)+1)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12.0,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	dc.SetColor(headerFill)
	dc.DrawRectangle(0, 0, imageWidth, rowHeight)
	dc.Fill()

	order := t.layout.Order()
	x := 0.0
	for i, name := range order {
		drawCellPNG(dc, name, x, 0, widths[i], rowHeight, charWidth, false)
		x += widths[i]
	}
	for r, row := range t.display {
		y := rowHeight * float64(r+1)
		x = 0
		for i := range order {
			text := ""
			if i < len(row) {
				text = row[i]
			}
			drawCellPNG(dc, text, x, y, widths[i], rowHeight, charWidth, t.proj.rightAlign[order[i]])
			x += widths[i]
		}
	}

	dc.SetColor(gridLine)
	dc.SetLineWidth(1.0)
	x = 0
	for _, w := range widths {
		dc.DrawLine(x+0.5, 0, x+0.5, imageHeight)
		x += w
	}
	dc.DrawLine(imageWidth+0.5, 0, imageWidth+0.5, imageHeight)
	for r := 0; r <= len(t.display)+1; r++ {
		y := rowHeight*float64(r) + 0.5
		dc.DrawLine(0, y, imageWidth, y)
	}
	dc.Stroke()

	if err := dc.SavePNG(filename); err != nil {
		return err
	}
	g.log.Info("table exported", slog.String("table", string(id)), slog.String("format", "png"), slog.String("path", filename))
	return nil
}

func drawCellPNG(dc *gg.Context, text string, x, y, width, height, charWidth float64, right bool) {
	cells := int(width/charWidth) - 1
	if cells < 1 {
		return
	}
	text = collapseSpace(text)
	if runewidth.StringWidth(text) > cells {
		text = runewidth.Truncate(text, cells, "…")
	}
	dc.SetColor(color.Black)
	baseline := y + height/2
	if right {
		dc.DrawStringAnchored(text, x+width-charWidth/2, baseline, 1, 0.35)
		return
	}
	dc.DrawStringAnchored(text, x+charWidth/2, baseline, 0, 0.35)
}

// ExportTSV writes the header and every held row in the current column
// order. Dates that fail to parse are kept as sent by the server.
func (g *Grid) ExportTSV(id TableID, filename string) error {
	t := g.table(id)
	if t == nil {
		return fmt.Errorf("unknown table %q", id)
	}
	if len(t.rows) == 0 {
		return ErrNoRows
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	order := t.layout.Order()
	exporter := t.proj
	exporter.formatters = exportFormatters(t.spec.Formatters)

	w := bufio.NewWriter(file)
	fmt.Fprintln(w, strings.Join(order, "\t"))
	for _, row := range exporter.project(t.rows, order) {
		for i := range row {
			row[i] = collapseSpace(row[i])
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	g.log.Info("table exported",
		slog.String("table", string(id)),
		slog.String("format", "tsv"),
		slog.String("path", filename),
		slog.Int("rows", len(t.rows)),
	)
	return nil
}

func exportFormatters(in map[string]formatter) map[string]formatter {
	out := make(map[string]formatter, len(in))
	for name, f := range in {
		if isDateColumn(name) {
			out[name] = formatDateKeep
			continue
		}
		out[name] = f
	}
	return out
}

func isDateColumn(name string) bool {
	return strings.HasPrefix(name, "Ngày")
}
