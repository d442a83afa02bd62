package core

import (
	"github.com/rogercaminal/nec2-antenna-simulator/model"
)

// SegmentEntry locates one segment: its wire (list index and tag),
// its 1-based number within that wire, its 0-based index in the
// engine's global segment order, and its centre point.
type SegmentEntry struct {
	WireIndex   int
	WireTag     int
	Segment     int
	GlobalIndex int
	Center      model.Point
}

// SegmentMap indexes every segment of an assembled model in the
// global order the engine uses for per-segment results, so a current
// sample can be tied back to a point in space. Centres assume uniform
// segment lengths; tapered wires get the uniform approximation.
type SegmentMap struct {
	entries []SegmentEntry
	byTag   map[int]map[int]int
}

// NewSegmentMap builds the map for wires in tag order, tag being list
// index plus one, matching how ModelBuilder assigns them.
func NewSegmentMap(wires []model.Wire) *SegmentMap {
	sm := &SegmentMap{byTag: make(map[int]map[int]int, len(wires))}
	global := 0
	for wi, w := range wires {
		tag := wi + 1
		span := w.End.Sub(w.Start)
		perTag := make(map[int]int, w.Segments)
		for k := 0; k < w.Segments; k++ {
			frac := (float64(k) + 0.5) / float64(w.Segments)
			sm.entries = append(sm.entries, SegmentEntry{
				WireIndex:   wi,
				WireTag:     tag,
				Segment:     k + 1,
				GlobalIndex: global,
				Center:      w.Start.Add(span.Scale(frac)),
			})
			perTag[k+1] = global
			global++
		}
		sm.byTag[tag] = perTag
	}
	return sm
}

// Len returns the total segment count.
func (sm *SegmentMap) Len() int {
	return len(sm.entries)
}

// Entries returns every segment in global order.
func (sm *SegmentMap) Entries() []SegmentEntry {
	out := make([]SegmentEntry, len(sm.entries))
	copy(out, sm.entries)
	return out
}

// At returns the entry at a global segment index.
func (sm *SegmentMap) At(global int) (SegmentEntry, bool) {
	if global < 0 || global >= len(sm.entries) {
		return SegmentEntry{}, false
	}
	return sm.entries[global], true
}

// Center returns the centre of the segment addressed by wire tag and
// 1-based segment number.
func (sm *SegmentMap) Center(tag, segment int) (model.Point, bool) {
	perTag, ok := sm.byTag[tag]
	if !ok {
		return model.Point{}, false
	}
	idx, ok := perTag[segment]
	if !ok {
		return model.Point{}, false
	}
	return sm.entries[idx].Center, true
}
