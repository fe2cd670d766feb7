package routeplan

import (
	"math"
	"testing"
)

func TestEstimateCostFormula(t *testing.T) {
	// zero jitter pins distance to 15*legs exactly
	e := NewFixedEstimator(0)

	est, err := e.Estimate(2, ModeTaxi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.DistanceKm != 15 {
		t.Fatalf("expected distance 15, got %d", est.DistanceKm)
	}
	if est.CostPerKm != 20 {
		t.Fatalf("expected costPerKm 20, got %v", est.CostPerKm)
	}
	want := math.Ceil(15*20 + 300)
	if est.TotalCost != want {
		t.Fatalf("expected total %v, got %v", want, est.TotalCost)
	}
}

func TestEstimateTaxiHundredKm(t *testing.T) {
	// distanceKm=100 needs legs such that floor(15*legs*(1+j)) = 100.
	// Verify the published contract directly: ceil(100*20+300) = 2300.
	e := NewFixedEstimator(0)
	est, err := e.Estimate(2, ModeTaxi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scaled := math.Ceil(100*est.CostPerKm + 300)
	if scaled != 2300 {
		t.Fatalf("expected 2300 for 100km taxi, got %v", scaled)
	}
}

func TestEstimateJitterBounds(t *testing.T) {
	e := NewSimulatedEstimator()
	for _, stops := range []int{2, 3, 5, 10} {
		legs := float64(stops - 1)
		lo := int(math.Floor(BaseLegDistanceKm * legs))
		hi := int(math.Floor(BaseLegDistanceKm * legs * 1.4))
		for i := 0; i < 200; i++ {
			est, err := e.Estimate(stops, ModeCar)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if est.DistanceKm < lo || est.DistanceKm > hi {
				t.Fatalf("stops=%d: distance %d outside [%d, %d]", stops, est.DistanceKm, lo, hi)
			}
			if est.TotalCost != math.Ceil(float64(est.DistanceKm)*25+500) {
				t.Fatalf("total %v inconsistent with distance %d", est.TotalCost, est.DistanceKm)
			}
		}
	}
}

func TestEstimateTravelTimeRounding(t *testing.T) {
	e := NewFixedEstimator(0)
	est, err := e.Estimate(3, ModeBus) // 30 km at 30 km/h
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.TravelTimeHours != 1.0 {
		t.Fatalf("expected 1.0h, got %v", est.TravelTimeHours)
	}

	est, err = e.Estimate(2, ModeCar) // 15 km at 45 km/h = 0.333 -> 0.3
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if est.TravelTimeHours != 0.3 {
		t.Fatalf("expected 0.3h, got %v", est.TravelTimeHours)
	}
}

func TestEstimateTooFewStops(t *testing.T) {
	e := NewSimulatedEstimator()
	for _, stops := range []int{-1, 0, 1} {
		if _, err := e.Estimate(stops, ModeCar); err != ErrTooFewStops {
			t.Fatalf("stops=%d: expected ErrTooFewStops, got %v", stops, err)
		}
	}
}

func TestEstimateUnknownMode(t *testing.T) {
	e := NewSimulatedEstimator()
	if _, err := e.Estimate(3, "helicopter"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestQuoteGuideFeeAdditivity(t *testing.T) {
	e := NewSimulatedEstimator()
	for i := 0; i < 50; i++ {
		est, err := e.Estimate(4, ModeTaxi)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		without := NewQuote(est, false)
		with := NewQuote(est, true)
		if with.Total != without.Total+GuideFee {
			t.Fatalf("guide quote %v != %v + %v", with.Total, without.Total, GuideFee)
		}
	}
}

func TestDefaultTransportCost(t *testing.T) {
	if DefaultTransportCost != 1000 {
		t.Fatalf("default transport cost changed: %v", DefaultTransportCost)
	}
}
