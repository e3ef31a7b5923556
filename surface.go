package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// surfacePadding keeps the surface from collapsing to zero width or height
// when both centers share an axis.
const surfacePadding = 20

// Surface is the drawable artifact owned by a single arrow. It is laid out
// absolutely at (X, Y) and holds at most one marker definition, one curve
// and one label.
type Surface struct {
	ID     string
	Within Handle
	X      float64
	Y      float64
	Width  float64
	Height float64

	marker *marker
	curve  *curve
	label  *label

	// Revision counts render passes.
	Revision int
}

type marker struct {
	ID    string
	Class string
}

// curve is a cubic bezier in surface coordinates. With no curvature the
// control points sit on the end points.
type curve struct {
	ID        string
	Start     Point
	C1        Point
	C2        Point
	End       Point
	MarkerRef string
}

func (c *curve) pathData() string {
	return fmt.Sprintf("M %v C %v %v %v", c.Start, c.C1, c.C2, c.End)
}

// pointAt evaluates the curve at t in [0, 1].
func (c *curve) pointAt(t float64) Point {
	u := 1 - t
	a, b, d, e := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*c.Start.X + b*c.C1.X + d*c.C2.X + e*c.End.X,
		Y: a*c.Start.Y + b*c.C1.Y + d*c.C2.Y + e*c.End.Y,
	}
}

type label struct {
	ID   string
	Text string
	Href string
}

func newSurface(arrowID string, within Handle) *Surface {
	return &Surface{ID: arrowID + "-svg", Within: within}
}

// render lays the surface out around both endpoint centers and redraws the
// curve from p1 to p2, given in viewport coordinates.
func (s *Surface) render(a *Arrow, p1, p2 Point, fromCenter, toCenter Point) {
	s.X = math.Min(fromCenter.X, toCenter.X) - surfacePadding
	s.Y = math.Min(fromCenter.Y, toCenter.Y) - surfacePadding
	s.Width = math.Abs(fromCenter.X-toCenter.X) + surfacePadding*2
	s.Height = math.Abs(fromCenter.Y-toCenter.Y) + surfacePadding*2

	if s.marker == nil {
		s.marker = &marker{ID: a.ID + "-triangle", Class: a.Config.Category}
	}

	origin := Point{X: s.X, Y: s.Y}
	start, end := p1.Sub(origin), p2.Sub(origin)
	s.curve = &curve{
		ID:        s.ID + "-line",
		Start:     start,
		C1:        start,
		C2:        end,
		End:       end,
		MarkerRef: s.marker.ID,
	}

	if a.Config.Name != "" {
		s.label = &label{ID: s.ID + "-text", Text: a.Config.Name, Href: s.curve.ID}
	}
	s.Revision++
}

// Drawn reports whether the surface carries a curve.
func (s *Surface) Drawn() bool {
	return s.curve != nil
}

func (s *Surface) style() string {
	return fmt.Sprintf(`style="position: absolute; top: %gpx; left: %gpx; z-index: -10;"`, s.Y, s.X)
}

// WriteSVG serializes the surface as a standalone svg element.
func (s *Surface) WriteSVG(w io.Writer) error {
	canvas := svg.New(w)
	canvas.Start(int(math.Ceil(s.Width)), int(math.Ceil(s.Height)),
		fmt.Sprintf(`id="%s"`, escapeText(s.ID)), `class="svg"`, s.style())
	s.writeBody(canvas)
	canvas.End()
	return nil
}

func (s *Surface) writeBody(canvas *svg.SVG) {
	if s.marker != nil {
		canvas.Def()
		attrs := []string{`viewBox="0 0 10 10"`, `markerUnits="strokeWidth"`, `orient="auto"`}
		if s.marker.Class != "" {
			attrs = append(attrs, fmt.Sprintf(`class="%s"`, escapeText(s.marker.Class)))
		}
		canvas.Marker(escapeText(s.marker.ID), 10, 5, 5, 8, attrs...)
		canvas.Path("M 0 0 L 10 5 L 0 10", `class="svg-line-triangle"`)
		canvas.MarkerEnd()
		canvas.DefEnd()
	}
	if s.curve != nil {
		canvas.Path(s.curve.pathData(),
			fmt.Sprintf(`id="%s"`, escapeText(s.curve.ID)),
			`class="svg-line"`,
			fmt.Sprintf(`marker-end="url(#%s)"`, escapeText(s.curve.MarkerRef)))
	}
	if s.label != nil {
		fmt.Fprintf(canvas.Writer,
			`<text id="%s" class="svg-text" dy="15px" text-anchor="middle" font-size="16px">`+
				`<textPath href="#%s" startOffset="50%%">%s</textPath></text>`+"\n",
			escapeText(s.label.ID), escapeText(s.label.Href), escapeText(s.label.Text))
	}
}

// escapeText escapes s for use in element text and quoted attributes.
func escapeText(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
