package road

// Merger joins imported segments that share an endpoint and carry the same
// attributes. Merging keeps every node of the joined segments, so
// intersection nodes stay intact. Where several matching continuations start
// at the same node, the chain is joined with the first one in input order.
type Merger struct {
	segments        []*Segment
	mergeCount      int
	unmergableCount int
}

func NewMerger(segments []*Segment) *Merger {
	return &Merger{
		segments: segments,
	}
}

func (m *Merger) Merge() {
	startIndex := make(map[int64][]*Segment)

	for _, segment := range m.segments {
		if len(segment.NodeIds) < 2 {
			m.unmergableCount++
			continue
		}
		startIndex[segment.NodeIds[0]] = append(startIndex[segment.NodeIds[0]], segment)
	}

	merged := make(map[int64]bool)
	newSegments := make([]*Segment, 0, len(m.segments))

	for _, segment := range m.segments {
		if merged[segment.ID] || len(segment.NodeIds) < 2 {
			continue
		}

		current := segment
		for {
			end := current.NodeIds[len(current.NodeIds)-1]
			continuations := startIndex[end]

			foundNext := false
			for _, next := range continuations {
				if merged[next.ID] || next.ID == current.ID {
					continue
				}
				if canMerge(current, next) {
					current = mergeTwoSegments(current, next)
					merged[next.ID] = true
					m.mergeCount++
					foundNext = true
					break
				}
			}

			if !foundNext {
				break
			}
		}

		newSegments = append(newSegments, current)
	}

	m.segments = newSegments
}

func canMerge(s1, s2 *Segment) bool {
	return s1.Type == s2.Type &&
		s1.OneWay == s2.OneWay &&
		s1.MaxSpeed == s2.MaxSpeed
}

func mergeTwoSegments(s1, s2 *Segment) *Segment {
	merged := &Segment{
		ID:       s1.ID,
		Type:     s1.Type,
		OneWay:   s1.OneWay,
		MaxSpeed: s1.MaxSpeed,
	}

	merged.NodeIds = append(merged.NodeIds, s1.NodeIds...)
	merged.Points = append(merged.Points, s1.Points...)
	// the first node repeats the end of s1
	merged.NodeIds = append(merged.NodeIds, s2.NodeIds[1:]...)
	merged.Points = append(merged.Points, s2.Points[1:]...)

	return merged
}

func (m *Merger) Segments() []*Segment {
	return m.segments
}

func (m *Merger) MergeCount() int {
	return m.mergeCount
}

func (m *Merger) UnmergableCount() int {
	return m.unmergableCount
}
