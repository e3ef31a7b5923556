package main

import (
	"strings"
)

// Selection is an ordered set of boxes resolved from a selector.
type Selection struct {
	canvas  *Canvas
	handles []Handle
}

// Options configures Selection.Arrows. From and To default to the
// selection itself and Within defaults to the document root.
type Options struct {
	From     string
	To       string
	ID       string
	Category string
	Name     string
	Within   string
}

// Select resolves a comma separated list of selectors. Each item is one of
// "*" (every box), "body" (the root), "#name" or ".class". Results are in
// document order without duplicates.
func (c *Canvas) Select(selector string) Selection {
	want := make(map[Handle]bool)
	for _, part := range strings.Split(selector, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
		case part == "body":
			want[Root] = true
		case part == "*":
			for _, b := range c.boxes {
				want[b.Handle] = true
			}
		case strings.HasPrefix(part, "#"):
			for _, b := range c.boxes {
				if b.Name != "" && b.Name == part[1:] {
					want[b.Handle] = true
				}
			}
		case strings.HasPrefix(part, "."):
			for _, b := range c.boxes {
				if b.HasClass(part[1:]) {
					want[b.Handle] = true
				}
			}
		}
	}

	sel := Selection{canvas: c}
	if want[Root] {
		sel.handles = append(sel.handles, Root)
	}
	for _, b := range c.boxes {
		if want[b.Handle] {
			sel.handles = append(sel.handles, b.Handle)
		}
	}
	return sel
}

// SelectHandles wraps handles that are already resolved.
func (c *Canvas) SelectHandles(hs ...Handle) Selection {
	return Selection{canvas: c, handles: append([]Handle(nil), hs...)}
}

func (s Selection) Handles() []Handle {
	return append([]Handle(nil), s.handles...)
}

func (s Selection) Len() int {
	return len(s.handles)
}

// Arrows connects the resolved From set to the resolved To set and returns
// the arrows created.
func (s Selection) Arrows(opts Options) []*Arrow {
	from, to := s.handles, s.handles
	if opts.From != "" {
		from = s.canvas.Select(opts.From).handles
	}
	if opts.To != "" {
		to = s.canvas.Select(opts.To).handles
	}

	within := Root
	if opts.Within != "" {
		hs := s.canvas.Select(opts.Within).handles
		if len(hs) == 0 {
			return nil
		}
		within = hs[0]
	}

	return s.canvas.arrows.Connect(endpoints(from), endpoints(to), ArrowConfig{
		ID:       opts.ID,
		Category: opts.Category,
		Name:     opts.Name,
		Within:   within,
	})
}

// endpoints drops the root, which can host surfaces but never anchor one.
func endpoints(hs []Handle) []Handle {
	out := make([]Handle, 0, len(hs))
	for _, h := range hs {
		if h != Root {
			out = append(out, h)
		}
	}
	return out
}

// UpdateArrows updates every arrow attached to the selection.
func (s Selection) UpdateArrows() Selection {
	for _, h := range s.handles {
		s.canvas.arrows.UpdateAll(h)
	}
	return s
}

// RemoveArrows destroys every arrow attached to the selection.
func (s Selection) RemoveArrows() Selection {
	for _, h := range s.handles {
		s.canvas.arrows.RemoveAll(h)
	}
	return s
}
