package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Snapshot captures a box, every arrow touching it and every arrow hosted
// inside it. Those are exactly the arrows DeleteBox takes down.
func (c *Canvas) Snapshot(h Handle) (BoxSnapshot, bool) {
	b, ok := c.GetBox(h)
	if !ok {
		return BoxSnapshot{}, false
	}
	snap := BoxSnapshot{Box: b}
	seen := make(map[*Arrow]bool)
	for _, a := range append(c.arrows.Arrows(h), c.arrows.HostedBy(h)...) {
		if !seen[a] {
			seen[a] = true
			snap.Arrows = append(snap.Arrows, recordOf(a))
		}
	}
	return snap, true
}

// RestoreBox puts a deleted box back and reconnects its arrows under their
// old ids.
func (c *Canvas) RestoreBox(snap BoxSnapshot) {
	c.AddBoxWithHandle(snap.Box)
	c.RestoreArrows(snap.Arrows)
}

// RestoreArrows recreates arrows from records. Records whose endpoints are
// gone, or whose id is already live, are skipped.
func (c *Canvas) RestoreArrows(records []ArrowRecord) {
	for _, rec := range records {
		if _, live := c.arrows.Lookup(rec.Config.ID); live {
			continue
		}
		if c.box(rec.From) == nil || c.box(rec.To) == nil {
			continue
		}
		cfg := rec.Config
		if cfg.Within != Root && c.box(cfg.Within) == nil {
			cfg.Within = Root
		}
		c.arrows.Connect([]Handle{rec.From}, []Handle{rec.To}, cfg)
	}
}

// RemoveArrows destroys the live arrows named by records.
func (c *Canvas) RemoveArrows(records []ArrowRecord) {
	for _, rec := range records {
		if a, ok := c.arrows.Lookup(rec.Config.ID); ok {
			c.arrows.Destroy(a)
		}
	}
}

// encodeField escapes a field for the comma separated save format.
// Backslashes are escaped as well, so a literal `\n` in text survives.
func encodeField(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case ',':
			b.WriteString(`\c`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// decodeField reverses encodeField in one left to right pass. An unknown
// escape is kept as written.
func decodeField(s string) string {
	var b strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped {
			if r == '\\' {
				escaped = true
			} else {
				b.WriteRune(r)
			}
			continue
		}
		escaped = false
		switch r {
		case '\\':
			b.WriteRune('\\')
		case 'n':
			b.WriteRune('\n')
		case 'c':
			b.WriteRune(',')
		default:
			b.WriteRune('\\')
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteRune('\\')
	}
	return b.String()
}

func (c *Canvas) SaveToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "ARROWS\n")
	fmt.Fprintf(w, "BOXES:%d\n", len(c.boxes))
	for _, box := range c.boxes {
		fmt.Fprintf(w, "%d,%d,%d,%d,%d,%s,%s,%s\n",
			box.Handle, box.X, box.Y, box.Width, box.Height,
			encodeField(box.Name),
			encodeField(strings.Join(box.Classes, ";")),
			encodeField(box.GetText()))
	}

	arrows := c.arrows.All()
	fmt.Fprintf(w, "LINKS:%d\n", len(arrows))
	for _, a := range arrows {
		fmt.Fprintf(w, "%d,%d,%s,%s,%d,%s\n",
			a.From, a.To,
			encodeField(a.ID), encodeField(a.Config.Category),
			a.Config.Within, encodeField(a.Config.Name))
	}

	fmt.Fprintf(w, "PAN:%d,%d\n", c.panX, c.panY)
	return w.Flush()
}

// LoadFromFile replaces the canvas with the document in filename. The file
// is parsed completely first; on any error the canvas is left untouched.
func (c *Canvas) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	doc, err := parseDocument(bufio.NewScanner(file))
	if err != nil {
		return err
	}

	c.Clear()
	for _, box := range doc.boxes {
		c.AddBoxWithHandle(box)
	}
	c.SetPan(doc.panX, doc.panY)

	// Reconnect once pan is known so the first observation is the real one.
	c.RestoreArrows(doc.links)
	return nil
}

// document is a parsed save file that has not been applied yet.
type document struct {
	boxes      []Box
	links      []ArrowRecord
	panX, panY int
}

func parseDocument(scanner *bufio.Scanner) (*document, error) {
	doc := &document{}

	// Read header
	if !scanner.Scan() || scanner.Text() != "ARROWS" {
		return nil, fmt.Errorf("invalid file format")
	}

	// Read boxes
	if !scanner.Scan() {
		return nil, fmt.Errorf("missing boxes header")
	}
	boxCount, err := strconv.Atoi(strings.TrimPrefix(scanner.Text(), "BOXES:"))
	if err != nil {
		return nil, fmt.Errorf("invalid box count: %w", err)
	}

	for i := 0; i < boxCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("missing box data")
		}
		parts := strings.SplitN(scanner.Text(), ",", 8)
		if len(parts) != 8 {
			return nil, fmt.Errorf("invalid box format on box %d", i)
		}

		nums := make([]int, 5)
		for j := range nums {
			if nums[j], err = strconv.Atoi(parts[j]); err != nil {
				return nil, fmt.Errorf("invalid box %d: %w", i, err)
			}
		}

		box := Box{Handle: Handle(nums[0]), X: nums[1], Y: nums[2], Name: decodeField(parts[5])}
		if classes := decodeField(parts[6]); classes != "" {
			box.Classes = strings.Split(classes, ";")
		}
		box.SetText(decodeField(parts[7]))
		box.Width = nums[3]
		box.Height = nums[4]
		doc.boxes = append(doc.boxes, box)
	}

	// Read arrows
	if !scanner.Scan() {
		return nil, fmt.Errorf("missing links header")
	}
	linkCount, err := strconv.Atoi(strings.TrimPrefix(scanner.Text(), "LINKS:"))
	if err != nil {
		return nil, fmt.Errorf("invalid link count: %w", err)
	}

	for i := 0; i < linkCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("missing link data")
		}
		parts := strings.SplitN(scanner.Text(), ",", 6)
		if len(parts) != 6 {
			return nil, fmt.Errorf("invalid link format on link %d", i)
		}
		from, err1 := strconv.Atoi(parts[0])
		to, err2 := strconv.Atoi(parts[1])
		within, err3 := strconv.Atoi(parts[4])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("invalid link %d", i)
		}
		doc.links = append(doc.links, ArrowRecord{
			From: Handle(from),
			To:   Handle(to),
			Config: ArrowConfig{
				ID:       decodeField(parts[2]),
				Category: decodeField(parts[3]),
				Name:     decodeField(parts[5]),
				Within:   Handle(within),
			},
		})
	}

	// Pan is optional
	if scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "PAN:") {
			if _, err := fmt.Sscanf(strings.TrimPrefix(line, "PAN:"), "%d,%d", &doc.panX, &doc.panY); err != nil {
				return nil, fmt.Errorf("invalid pan: %w", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}
