package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// drawnArrows returns every arrow that currently has something to show.
func (c *Canvas) drawnArrows() []*Arrow {
	var out []*Arrow
	for _, a := range c.arrows.All() {
		if !a.Hidden() && a.Surface().Drawn() {
			out = append(out, a)
		}
	}
	return out
}

// exportBounds covers every box and every drawn surface, in pixels.
func (c *Canvas) exportBounds() (Rect, bool) {
	var b Rect
	has := false
	grow := func(r Rect) {
		if !has {
			b, has = r, true
			return
		}
		b.Left = math.Min(b.Left, r.Left)
		b.Top = math.Min(b.Top, r.Top)
		b.Right = math.Max(b.Right, r.Right)
		b.Bottom = math.Max(b.Bottom, r.Bottom)
	}

	for _, box := range c.boxes {
		if r, ok := c.BoundingBox(box.Handle); ok {
			grow(r)
		}
	}
	for _, a := range c.drawnArrows() {
		s := a.Surface()
		grow(Rect{Top: s.Y, Left: s.X, Right: s.X + s.Width, Bottom: s.Y + s.Height})
	}
	return b, has
}

// ExportSVG writes boxes and drawn arrows as one svg document.
func (c *Canvas) ExportSVG(w io.Writer) error {
	bounds, ok := c.exportBounds()
	if !ok {
		return fmt.Errorf("nothing to export")
	}

	canvas := svg.New(w)
	width := int(math.Ceil(bounds.Width()))
	height := int(math.Ceil(bounds.Height()))
	canvas.Start(width, height)
	canvas.Gtransform(fmt.Sprintf("translate(%g,%g)", -bounds.Left, -bounds.Top))

	for _, a := range c.drawnArrows() {
		s := a.Surface()
		canvas.Gtransform(fmt.Sprintf("translate(%g,%g)", s.X, s.Y))
		s.writeBody(canvas)
		canvas.Gend()
	}

	for _, box := range c.boxes {
		r, _ := c.BoundingBox(box.Handle)
		canvas.Rect(int(r.Left), int(r.Top), int(r.Width()), int(r.Height()),
			`class="box"`, "fill:white;stroke:black")
		for i, line := range box.Lines {
			canvas.Text(int(r.Left+charWidth), int(r.Top+float64(i+2)*charHeight-4), line,
				"font-family:monospace;font-size:12px")
		}
	}

	canvas.Gend()
	canvas.End()
	return nil
}

// SVGString renders ExportSVG into a string, for the clipboard.
func (c *Canvas) SVGString() (string, error) {
	var buf bytes.Buffer
	if err := c.ExportSVG(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (c *Canvas) ExportToPNG(filename string) error {
	dc, err := c.rasterize()
	if err != nil {
		return err
	}
	return dc.SavePNG(filename)
}

func (c *Canvas) rasterize() (*gg.Context, error) {
	bounds, ok := c.exportBounds()
	if !ok {
		return nil, fmt.Errorf("nothing to export")
	}

	imageWidth := int(math.Ceil(bounds.Width()))
	imageHeight := int(math.Ceil(bounds.Height()))

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	// Arrows first so they sit behind boxes
	for _, a := range c.drawnArrows() {
		drawArrowPNG(dc, a.Surface(), bounds.Left, bounds.Top)
	}
	for _, box := range c.boxes {
		r, _ := c.BoundingBox(box.Handle)
		drawBoxPNG(dc, box, r, bounds.Left, bounds.Top)
	}
	return dc, nil
}

func drawArrowPNG(dc *gg.Context, s *Surface, originX, originY float64) {
	offX, offY := s.X-originX, s.Y-originY
	cv := s.curve

	dc.SetLineWidth(1.0)
	dc.SetColor(color.Black)
	dc.MoveTo(cv.Start.X+offX, cv.Start.Y+offY)
	dc.CubicTo(cv.C1.X+offX, cv.C1.Y+offY, cv.C2.X+offX, cv.C2.Y+offY, cv.End.X+offX, cv.End.Y+offY)
	dc.Stroke()

	// Arrowhead along the tangent at the end
	tail := cv.pointAt(0.95)
	dx := cv.End.X - tail.X
	dy := cv.End.Y - tail.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length >= 0.1 {
		dx /= length
		dy /= length

		arrowSize := 6.0
		arrowAngle := 0.5

		tipX, tipY := cv.End.X+offX, cv.End.Y+offY
		dc.MoveTo(tipX, tipY)
		dc.LineTo(tipX-arrowSize*dx+arrowSize*dy*arrowAngle, tipY-arrowSize*dy-arrowSize*dx*arrowAngle)
		dc.LineTo(tipX-arrowSize*dx-arrowSize*dy*arrowAngle, tipY-arrowSize*dy+arrowSize*dx*arrowAngle)
		dc.ClosePath()
		dc.Fill()
	}

	if s.label == nil {
		return
	}
	mid := cv.pointAt(0.5)
	angle := math.Atan2(cv.End.Y-cv.Start.Y, cv.End.X-cv.Start.X)
	// Keep text upright
	if angle > math.Pi/2 || angle < -math.Pi/2 {
		angle += math.Pi
	}
	dc.Push()
	dc.RotateAbout(angle, mid.X+offX, mid.Y+offY)
	dc.DrawStringAnchored(s.label.Text, mid.X+offX, mid.Y+offY+12, 0.5, 0.5)
	dc.Pop()
}

func drawBoxPNG(dc *gg.Context, box Box, r Rect, originX, originY float64) {
	x := r.Left - originX
	y := r.Top - originY

	dc.SetColor(color.White)
	dc.DrawRectangle(x, y, r.Width(), r.Height())
	dc.Fill()

	dc.SetLineWidth(1.0)
	dc.SetColor(color.Black)
	dc.DrawRectangle(x, y, r.Width(), r.Height())
	dc.Stroke()

	textY := y + charHeight
	for i, line := range box.Lines {
		dc.DrawString(line, x+charWidth, textY+float64(i)*charHeight)
	}
}
