package report

import "math"

// financials are the derived money columns for one row. Every formula is
// safe on zero or negative denominators: the ratio is 0, never NaN or Inf.
type financials struct {
	DiscountPct float64
	CostTotal   float64
	Margin      float64
	MarginPct   float64
}

func computeFinancials(netTotal, grossTotal, discountGross, unitCost, quantity float64) financials {
	fin := financials{
		CostTotal: unitCost * quantity,
	}
	fin.Margin = netTotal - fin.CostTotal

	if base := grossTotal + discountGross; base > 0 {
		fin.DiscountPct = discountGross / base
	}
	if netTotal > 0 {
		fin.MarginPct = fin.Margin / netTotal
	}
	return fin
}

// amountWarning flags rows whose stated gross total deviates from
// quantity x gross unit price beyond a 1% relative tolerance plus a 1-unit
// absolute floor, which absorbs upstream rounding.
func amountWarning(quantity, grossUnitPrice, grossTotal float64) bool {
	expected := quantity * grossUnitPrice
	tolerance := math.Abs(expected)*0.01 + 1.0
	return math.Abs(grossTotal-expected) > tolerance
}
