package services

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestComputePrices_Bands(t *testing.T) {
	tests := []struct {
		name     string
		cost     float64
		efectivo float64
		pvp      float64
	}{
		{"centavos band", 0.50, 5.00, 6.25},
		{"centavos band upper edge", 0.99, 9.90, 12.38},
		{"low band lower edge", 1.00, 2.10, 2.60},
		{"low band", 20.00, 42.00, 52.00},
		{"low band upper edge", 39.99, 83.98, 103.97},
		{"mid band", 40.00, 60.00, 76.00},
		{"mid band", 99.99, 149.99, 189.98},
		{"hundreds band", 100.00, 120.00, 130.00},
		{"hundreds band", 250.00, 300.00, 325.00},
		{"high band", 500.00, 550.00, 575.00},
		{"high band", 1499.99, 1649.99, 1724.99},
		{"open band lower edge", 1500.00, 1575.00, 1650.00},
		{"open band", 1600.00, 1680.00, 1760.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ComputePrices(tt.cost)
			if err != nil {
				t.Fatalf("ComputePrices(%v) returned error: %v", tt.cost, err)
			}
			if !almostEqual(p.Efectivo, tt.efectivo) {
				t.Errorf("cost %v: efectivo = %v, want %v", tt.cost, p.Efectivo, tt.efectivo)
			}
			if !almostEqual(p.Pvp, tt.pvp) {
				t.Errorf("cost %v: pvp = %v, want %v", tt.cost, p.Pvp, tt.pvp)
			}
		})
	}
}

// Credit prices are always list x1.10 and x1.15, in every band.
func TestComputePrices_CreditTiers(t *testing.T) {
	tests := []struct {
		cost   float64
		cred10 float64
		cred15 float64
	}{
		{0.50, 6.88, 7.19},
		{20.00, 57.20, 59.80},
		{75.00, 156.75, 163.88},
		{250.00, 357.50, 373.75},
		{900.00, 1138.50, 1190.25},
		{1600.00, 1936.00, 2024.00},
	}
	for _, tt := range tests {
		p, err := ComputePrices(tt.cost)
		if err != nil {
			t.Fatalf("ComputePrices(%v) returned error: %v", tt.cost, err)
		}
		if !almostEqual(p.Cred10, tt.cred10) {
			t.Errorf("cost %v: cred10 = %v, want %v", tt.cost, p.Cred10, tt.cred10)
		}
		if !almostEqual(p.Cred15, tt.cred15) {
			t.Errorf("cost %v: cred15 = %v, want %v", tt.cost, p.Cred15, tt.cred15)
		}
	}
}

func TestComputePrices_RejectsNonPositiveCost(t *testing.T) {
	for _, cost := range []float64{0, -1, 0.001} {
		if _, err := ComputePrices(cost); err == nil {
			t.Errorf("ComputePrices(%v) = nil error, want validation error", cost)
		}
	}
}

func TestLineSubtotal(t *testing.T) {
	tests := []struct {
		price float64
		qty   int
		want  float64
	}{
		{6.25, 4, 25.00},
		{0.10, 3, 0.30},
		{19.99, 7, 139.93},
		{1760.00, 1, 1760.00},
	}
	for _, tt := range tests {
		if got := LineSubtotal(tt.price, tt.qty); !almostEqual(got, tt.want) {
			t.Errorf("LineSubtotal(%v, %d) = %v, want %v", tt.price, tt.qty, got, tt.want)
		}
	}
}
