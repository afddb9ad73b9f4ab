package services

import "github.com/shopspring/decimal"

// Prices are the four sale prices derived from a product's cost.
type Prices struct {
	Efectivo float64 // cash price
	Pvp      float64 // list price
	Cred10   float64 // list +10%
	Cred15   float64 // list +15%
}

// priceBand maps an inclusive cost interval to cash/list multipliers. Credit
// prices do not depend on the band.
type priceBand struct {
	min, max            decimal.Decimal // max zero => open-ended
	efectivoMul, pvpMul decimal.Decimal
}

var priceBands = []priceBand{
	{dec("0.01"), dec("0.99"), dec("10"), dec("12.5")},
	{dec("1.00"), dec("39.99"), dec("2.1"), dec("2.6")},
	{dec("40.00"), dec("99.99"), dec("1.5"), dec("1.9")},
	{dec("100.00"), dec("499.99"), dec("1.2"), dec("1.3")},
	{dec("500.00"), dec("1499.99"), dec("1.1"), dec("1.15")},
	{dec("1500.00"), decimal.Decimal{}, dec("1.05"), dec("1.1")},
}

var (
	cred10Mul = dec("1.10")
	cred15Mul = dec("1.15")
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ComputePrices derives all four prices from cost. The mapping is total over
// costs >= 0.01; lower costs are rejected upstream by validation. Prices are
// recomputed in full whenever a cost changes; there is no partial price edit.
func ComputePrices(cost float64) (Prices, error) {
	c := decimal.NewFromFloat(cost)
	if c.LessThan(dec("0.01")) {
		return Prices{}, ValidationErr("el costo debe ser mayor a 0")
	}

	var band *priceBand
	for i := range priceBands {
		b := &priceBands[i]
		if c.GreaterThanOrEqual(b.min) && (b.max.IsZero() || c.LessThanOrEqual(b.max)) {
			band = b
			break
		}
	}
	if band == nil {
		return Prices{}, ValidationErr("costo fuera de rango: %s", c.StringFixed(2))
	}

	efectivo := c.Mul(band.efectivoMul).Round(2)
	pvp := c.Mul(band.pvpMul).Round(2)

	return Prices{
		Efectivo: efectivo.InexactFloat64(),
		Pvp:      pvp.InexactFloat64(),
		Cred10:   pvp.Mul(cred10Mul).Round(2).InexactFloat64(),
		Cred15:   pvp.Mul(cred15Mul).Round(2).InexactFloat64(),
	}, nil
}

// LineSubtotal computes quantity x unit price at 2 decimals.
func LineSubtotal(unitPrice float64, qty int) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(qty))).
		Round(2).
		InexactFloat64()
}
