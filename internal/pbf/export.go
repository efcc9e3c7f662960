package pbf

import (
	"encoding/json"
	"os"

	"github.com/natevvv/osm-ch-constructor/pkg/road"
)

// ExportSegmentsJson writes the imported segments to a JSON file so that
// repeated graph builds can skip the OSM decoding passes.
func ExportSegmentsJson(segments []*road.Segment, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(segments)
}

// LoadSegmentsJson reads segments written by ExportSegmentsJson.
func LoadSegmentsJson(filename string) ([]*road.Segment, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var segments []*road.Segment
	if err := json.Unmarshal(bytes, &segments); err != nil {
		return nil, err
	}
	return segments, nil
}
