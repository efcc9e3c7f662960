package geometry

import (
	"encoding/json"
	"math"
	"testing"
)

func TestPointAccessors(t *testing.T) {
	p := MakePoint(48.7758, 9.1829)
	if p.Lat() != 48.7758 {
		t.Errorf("expected lat 48.7758, got %v", p.Lat())
	}
	if p.Lon() != 9.1829 {
		t.Errorf("expected lon 9.1829, got %v", p.Lon())
	}
}

func TestDistanceTo(t *testing.T) {
	stuttgart := MakePoint(48.7758, 9.1829)
	munich := MakePoint(48.1351, 11.5820)
	distance := stuttgart.DistanceTo(munich)
	// great circle distance is about 190 km
	if math.Abs(distance-190000) > 5000 {
		t.Errorf("unexpected distance %v", distance)
	}
	if stuttgart.DistanceTo(stuttgart) != 0 {
		t.Errorf("expected zero distance")
	}
}

func TestPointJsonRoundTrip(t *testing.T) {
	p := MakePoint(48.7758, 9.1829)
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[9.1829,48.7758]" {
		t.Errorf("unexpected encoding %v", string(data))
	}
	var decoded Point
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != p {
		t.Errorf("expected %v, got %v", p, decoded)
	}
}
