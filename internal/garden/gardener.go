package garden

import (
	"context"
	"time"

	"github.com/danmuck/cotyledon/internal/catalog"
	"github.com/rs/zerolog"
)

// Clock reads wall-clock time. Tests substitute fixed clocks.
type Clock func() time.Time

// Gardener runs the sow protocol: verify, plant, append, re-sign.
// It holds only immutable values and is safe for concurrent use.
type Gardener struct {
	catalog *catalog.Catalog
	signer  *Signer
	now     Clock
}

type Option func(*Gardener)

func WithClock(now Clock) Option {
	return func(g *Gardener) {
		if now != nil {
			g.now = now
		}
	}
}

func NewGardener(cat *catalog.Catalog, signer *Signer, opts ...Option) *Gardener {
	g := &Gardener{
		catalog: cat,
		signer:  signer,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gardener) Catalog() *catalog.Catalog {
	return g.catalog
}

func (g *Gardener) Signer() *Signer {
	return g.signer
}

// NewPlant validates plantType and stamps the plant with the current time.
func (g *Gardener) NewPlant(plantType string) (Plant, error) {
	if !g.catalog.Contains(plantType) {
		return Plant{}, &PlantTypeError{Name: plantType}
	}
	planted, err := unixSeconds(g.now())
	if err != nil {
		return Plant{}, err
	}
	return Plant{PlantType: plantType, Planted: planted}, nil
}

// Sow verifies state, plants plantType and returns the re-signed garden.
// state is never modified; on error nothing is returned.
func (g *Gardener) Sow(ctx context.Context, state SignedState, plantType string) (SignedState, error) {
	logger := zerolog.Ctx(ctx)

	verified, err := g.signer.Verify(state)
	if err != nil {
		return SignedState{}, err
	}
	if state.Plot.IsEmpty() && state.NatureApproved.IsPresent() && !g.signer.strictEmptyPlot {
		logger.Debug().Msg("approval on empty plot not checked")
	}

	plant, err := g.NewPlant(plantType)
	if err != nil {
		return SignedState{}, err
	}

	sealed, err := g.signer.Seal(verified.Append(plant))
	if err != nil {
		return SignedState{}, err
	}
	logger.Debug().
		Str("plant_type", plant.PlantType).
		Uint64("planted", plant.Planted).
		Int("plants", sealed.Plot.Len()).
		Msg("plant sown")
	return sealed, nil
}

// Ripeness reports how far along p is using the gardener's clock. Unlike
// CheckRipeness, an unknown plant type is the caller's fault here.
func (g *Gardener) Ripeness(p Plant) (Ripeness, error) {
	if !g.catalog.Contains(p.PlantType) {
		return Ripeness{}, &PlantTypeError{Name: p.PlantType}
	}
	return CheckRipeness(g.catalog, p, g.now())
}

func unixSeconds(t time.Time) (uint64, error) {
	secs := t.Unix()
	if secs < 0 {
		return 0, internalf(nil, "time drift detected: clock reads %s, before the unix epoch", t.UTC().Format(time.RFC3339))
	}
	return uint64(secs), nil
}
