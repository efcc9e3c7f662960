package road

import "testing"

func TestMergeJoinsChains(t *testing.T) {
	segments := []*Segment{
		makeSegment(1, false, []int64{10, 11}, [][2]float64{{48.7, 9.1}, {48.8, 9.2}}),
		makeSegment(2, false, []int64{11, 12}, [][2]float64{{48.8, 9.2}, {48.9, 9.3}}),
		makeSegment(3, false, []int64{12, 13}, [][2]float64{{48.9, 9.3}, {49.0, 9.4}}),
	}
	merger := NewMerger(segments)
	merger.Merge()

	if merger.MergeCount() != 2 {
		t.Errorf("expected 2 merges, got %v", merger.MergeCount())
	}
	result := merger.Segments()
	if len(result) != 1 {
		t.Fatalf("expected 1 segment, got %v", len(result))
	}
	wantNodes := []int64{10, 11, 12, 13}
	if len(result[0].NodeIds) != len(wantNodes) {
		t.Fatalf("expected %v node ids, got %v", len(wantNodes), len(result[0].NodeIds))
	}
	for i, nodeId := range wantNodes {
		if result[0].NodeIds[i] != nodeId {
			t.Errorf("node %v: expected %v, got %v", i, nodeId, result[0].NodeIds[i])
		}
	}
	if len(result[0].Points) != len(result[0].NodeIds) {
		t.Errorf("points and node ids diverged: %v vs %v", len(result[0].Points), len(result[0].NodeIds))
	}
}

func TestMergeKeepsDifferingAttributes(t *testing.T) {
	oneWay := makeSegment(2, true, []int64{11, 12}, [][2]float64{{48.8, 9.2}, {48.9, 9.3}})
	segments := []*Segment{
		makeSegment(1, false, []int64{10, 11}, [][2]float64{{48.7, 9.1}, {48.8, 9.2}}),
		oneWay,
	}
	merger := NewMerger(segments)
	merger.Merge()

	if merger.MergeCount() != 0 {
		t.Errorf("expected no merges, got %v", merger.MergeCount())
	}
	if len(merger.Segments()) != 2 {
		t.Errorf("expected 2 segments, got %v", len(merger.Segments()))
	}
}

func TestMergeCountsUnmergable(t *testing.T) {
	segments := []*Segment{
		makeSegment(1, false, []int64{10}, [][2]float64{{48.7, 9.1}}),
		makeSegment(2, false, []int64{11, 12}, [][2]float64{{48.8, 9.2}, {48.9, 9.3}}),
	}
	merger := NewMerger(segments)
	merger.Merge()

	if merger.UnmergableCount() != 1 {
		t.Errorf("expected 1 unmergable segment, got %v", merger.UnmergableCount())
	}
}
