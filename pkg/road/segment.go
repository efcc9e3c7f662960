package road

import (
	"github.com/natevvv/osm-ch-constructor/pkg/geometry"
)

type RoadType int

const (
	Unknown RoadType = iota
	Motorway
	Trunk
	Primary
	Secondary
	Tertiary
)

func (r RoadType) String() string {
	return []string{"Unknown", "Motorway", "Trunk", "Primary", "Secondary", "Tertiary"}[r]
}

// TypeFromHighway maps an OSM highway tag to a road type. Ways tagged with
// anything else are not imported.
func TypeFromHighway(highway string) RoadType {
	switch highway {
	case "motorway":
		return Motorway
	case "trunk":
		return Trunk
	case "primary":
		return Primary
	case "secondary":
		return Secondary
	case "tertiary":
		return Tertiary
	}
	return Unknown
}

// DefaultMaxSpeed is used when a way carries no usable maxspeed tag.
func (r RoadType) DefaultMaxSpeed() int {
	switch r {
	case Motorway:
		return 120
	case Trunk:
		return 100
	case Primary:
		return 80
	case Secondary:
		return 60
	case Tertiary:
		return 50
	}
	return 30
}

// Segment is one imported OSM way. NodeIds and Points run in parallel.
type Segment struct {
	ID       int64
	Type     RoadType
	NodeIds  []int64
	Points   []geometry.Point
	OneWay   bool
	MaxSpeed int // km/h
}
