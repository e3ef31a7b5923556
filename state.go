package main

// edges is the observation vector compared between update passes: top,
// right, bottom, left of the from box followed by the same for the to box.
type edges [8]float64

func edgesOf(from, to Rect) edges {
	return edges{
		from.Top, from.Right, from.Bottom, from.Left,
		to.Top, to.Right, to.Bottom, to.Left,
	}
}

func (e edges) from() Rect { return Rect{Top: e[0], Right: e[1], Bottom: e[2], Left: e[3]} }
func (e edges) to() Rect   { return Rect{Top: e[4], Right: e[5], Bottom: e[6], Left: e[7]} }

// Layout resolves an endpoint to its current bounding box in viewport space.
// ok is false when the endpoint is no longer part of the document.
type Layout interface {
	BoundingBox(h Handle) (r Rect, ok bool)
}

// observe takes a fresh reading of both endpoints and reports whether it
// differs from the previous one. The stored reading is always replaced.
func (a *Arrow) observe(layout Layout) (changed, hidden bool) {
	from, _ := layout.BoundingBox(a.From)
	to, _ := layout.BoundingBox(a.To)

	next := edgesOf(from, to)
	prev := a.observed
	a.observed = &next
	a.hidden = from.IsZero() || to.IsZero()

	if prev == nil {
		return true, a.hidden
	}
	return *prev != next, a.hidden
}
