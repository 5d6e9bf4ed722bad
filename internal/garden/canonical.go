package garden

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/gowebpki/jcs"
)

// canonicalDomain separates plot MACs from anything else keyed by the same secret.
const canonicalDomain = "cotyledon.plot.v1"

// Timestamps are decimal strings so that every uint64 survives JCS number
// formatting exactly.
type canonicalPlant struct {
	PlantType string `json:"plant_type"`
	Planted   string `json:"planted"`
}

type canonicalPlot struct {
	Domain string           `json:"domain"`
	Plants []canonicalPlant `json:"plants"`
}

// CanonicalBytes returns the RFC 8785 serialization that plot signatures are
// computed over:
//
//	{"domain":"cotyledon.plot.v1","plants":[{"plant_type":"carrot","planted":"1700000000"}]}
func CanonicalBytes(plot Plot) ([]byte, error) {
	doc := canonicalPlot{
		Domain: canonicalDomain,
		Plants: make([]canonicalPlant, 0, len(plot.Plants)),
	}
	for i, p := range plot.Plants {
		if !utf8.ValidString(p.PlantType) {
			return nil, fmt.Errorf("plants[%d]: plant_type is not valid UTF-8", i)
		}
		doc.Plants = append(doc.Plants, canonicalPlant{
			PlantType: p.PlantType,
			Planted:   strconv.FormatUint(p.Planted, 10),
		})
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("canonical marshal: %w", err)
	}
	out, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonical transform: %w", err)
	}
	return out, nil
}
