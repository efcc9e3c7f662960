package format

import (
	"fmt"

	"github.com/natevvv/osm-ch-constructor/pkg/graph"
)

// Format identifies one of the supported text graph formats.
type Format int

const (
	SIMPLE Format = iota
	STD
	FMI
	FMICH
)

func (f Format) String() string {
	switch f {
	case SIMPLE:
		return "SIMPLE"
	case STD:
		return "STD"
	case FMI:
		return "FMI"
	case FMICH:
		return "FMI_CH"
	}
	return "INVALID"
}

func parseFormat(name string) (Format, bool) {
	switch name {
	case "SIMPLE":
		return SIMPLE, true
	case "STD":
		return STD, true
	case "FMI":
		return FMI, true
	case "FMI_CH":
		return FMICH, true
	}
	return 0, false
}

// ParseInputFormat resolves an input format name.
func ParseInputFormat(name string) (Format, error) {
	f, ok := parseFormat(name)
	if !ok || f == FMICH {
		return 0, fmt.Errorf("unsupported input format %q (expected SIMPLE, STD or FMI)", name)
	}
	return f, nil
}

// ParseOutputFormat resolves an output format name.
func ParseOutputFormat(name string) (Format, error) {
	f, ok := parseFormat(name)
	if !ok || f == FMI {
		return 0, fmt.Errorf("unsupported output format %q (expected SIMPLE, STD or FMI_CH)", name)
	}
	return f, nil
}

// GraphData is the exchange value between the file formats and the
// construction. Levels is nil unless the source carries hierarchy data.
type GraphData struct {
	Nodes  []graph.Node
	Edges  []graph.Edge
	Levels []int
}
