package routeplan

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Transport modes accepted by the estimator.
const (
	ModeCar  = "car"
	ModeTaxi = "taxi"
	ModeBus  = "bus"
)

const (
	// BaseLegDistanceKm is the synthetic distance of one leg before jitter.
	BaseLegDistanceKm = 15.0

	// GuideFee is the flat fee added when the traveller books a guide,
	// regardless of party size or distance.
	GuideFee = 1000.0

	// DefaultTransportCost is the placeholder shown before any estimate
	// has been computed. It is a baseline, not a computed value.
	DefaultTransportCost = 1000.0

	maxJitter = 0.4
)

var ErrTooFewStops = errors.New("routeplan: at least two stops are required")

type modeRates struct {
	speedKmh  float64
	costPerKm float64
	surcharge float64
}

var rates = map[string]modeRates{
	ModeCar:  {speedKmh: 45, costPerKm: 25, surcharge: 500},
	ModeTaxi: {speedKmh: 40, costPerKm: 20, surcharge: 300},
	ModeBus:  {speedKmh: 30, costPerKm: 8, surcharge: 100},
}

// Estimate is the simulated cost/time/distance result for visiting all
// itinerary stops in order. It is never persisted; each computation
// supersedes the previous one.
type Estimate struct {
	DistanceKm      int     `json:"distance_km"`
	TravelTimeHours float64 `json:"travel_time_hours"`
	CostPerKm       float64 `json:"cost_per_km"`
	BaseCost        float64 `json:"base_cost"`
	TotalCost       float64 `json:"total_cost"`
	Mode            string  `json:"mode"`
}

// Estimator produces a route estimate for a stop count and transport
// mode. The simulated implementation below fakes distances; a real
// geospatial routing backend can be swapped in behind this interface
// without touching callers.
type Estimator interface {
	Estimate(stops int, mode string) (Estimate, error)
}

// SimulatedEstimator synthesizes distances from the stop count with
// bounded random jitter. Results are internally consistent but
// intentionally non-deterministic between calls.
type SimulatedEstimator struct {
	// jitter returns a value in [0, maxJitter). Overridable for tests.
	jitter func() float64
}

func NewSimulatedEstimator() *SimulatedEstimator {
	return &SimulatedEstimator{
		jitter: func() float64 { return rand.Float64() * maxJitter },
	}
}

// NewFixedEstimator returns an estimator whose jitter is pinned,
// useful for deterministic tests.
func NewFixedEstimator(jitter float64) *SimulatedEstimator {
	return &SimulatedEstimator{jitter: func() float64 { return jitter }}
}

func (e *SimulatedEstimator) Estimate(stops int, mode string) (Estimate, error) {
	if stops < 2 {
		return Estimate{}, ErrTooFewStops
	}
	r, ok := rates[mode]
	if !ok {
		return Estimate{}, fmt.Errorf("routeplan: unknown transport mode %q", mode)
	}

	legs := stops - 1
	distanceKm := math.Floor(BaseLegDistanceKm * float64(legs) * (1 + e.jitter()))
	travelTime := math.Round(distanceKm/r.speedKmh*10) / 10
	baseCost := distanceKm * r.costPerKm

	return Estimate{
		DistanceKm:      int(distanceKm),
		TravelTimeHours: travelTime,
		CostPerKm:       r.costPerKm,
		BaseCost:        baseCost,
		TotalCost:       math.Ceil(baseCost + r.surcharge),
		Mode:            mode,
	}, nil
}

// Quote is the bookable total for a simulated tour: the estimate plus
// an optional flat guide fee.
type Quote struct {
	Estimate  Estimate `json:"estimate"`
	WithGuide bool     `json:"with_guide"`
	GuideFee  float64  `json:"guide_fee,omitempty"`
	Total     float64  `json:"total"`
}

// NewQuote composes a booking quote from an estimate.
func NewQuote(est Estimate, withGuide bool) Quote {
	q := Quote{Estimate: est, WithGuide: withGuide, Total: est.TotalCost}
	if withGuide {
		q.GuideFee = GuideFee
		q.Total += GuideFee
	}
	return q
}

// Modes lists the supported transport modes.
func Modes() []string {
	return []string{ModeCar, ModeTaxi, ModeBus}
}
