package geometry

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

type Point struct {
	point orb.Point
}

func MakePoint(lat, lon float64) Point {
	return Point{point: orb.Point{lon, lat}}
}

func (p Point) Lat() float64 { return p.point.Lat() }
func (p Point) Lon() float64 { return p.point.Lon() }

// DistanceTo returns the haversine distance in meters.
func (p Point) DistanceTo(other Point) float64 {
	return geo.DistanceHaversine(p.point, other.point)
}

// Points serialize as [lon, lat], matching the GeoJSON coordinate order.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64(p.point))
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var coords [2]float64
	if err := json.Unmarshal(data, &coords); err != nil {
		return err
	}
	p.point = orb.Point(coords)
	return nil
}
