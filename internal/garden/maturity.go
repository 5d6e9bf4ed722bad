package garden

import (
	"time"

	"github.com/danmuck/cotyledon/internal/catalog"
)

type Ripeness struct {
	Elapsed  uint64 `json:"elapsed"`
	IsMature bool   `json:"is_mature"`
}

// CheckRipeness computes elapsed seconds since p was planted. A plant is mature
// only once elapsed is strictly greater than its grow time.
func CheckRipeness(cat *catalog.Catalog, p Plant, now time.Time) (Ripeness, error) {
	nowSecs, err := unixSeconds(now)
	if err != nil {
		return Ripeness{}, err
	}
	if p.Planted > nowSecs {
		return Ripeness{}, internalf(nil, "the timestamp for this plant is in the future: planted=%d now=%d", p.Planted, nowSecs)
	}
	elapsed := nowSecs - p.Planted

	growTime, ok := cat.Lookup(p.PlantType)
	if !ok {
		return Ripeness{}, internalf(nil, "plant type %q missing from catalog", p.PlantType)
	}
	return Ripeness{
		Elapsed:  elapsed,
		IsMature: elapsed > uint64(growTime/time.Second),
	}, nil
}

func IsMature(cat *catalog.Catalog, p Plant, now time.Time) (bool, error) {
	r, err := CheckRipeness(cat, p, now)
	if err != nil {
		return false, err
	}
	return r.IsMature, nil
}
