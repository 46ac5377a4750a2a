// Package fees implements fee computation for fee-bearing transfers and the
// timelocked governance state machine for changing the buy/sell percentages.
package fees

import "math/bits"

// Fee allocation percentages. These are fixed by design; only the buy and
// sell percentages are governable.
const (
	ReflectionPercent = 70
	LiquidityPercent  = 20
	MarketingPercent  = 10

	// MaxFeePercent caps the buy and sell fee percentages.
	MaxFeePercent = 100
)

// Split is the three-way allocation of a collected fee. The marketing part
// absorbs the integer-division remainder, so the three parts always sum
// exactly to the fee.
type Split struct {
	Reflection uint64 // earmarked for pro-rata holder rewards
	Liquidity  uint64 // routed to the pool-proxy account
	Marketing  uint64 // routed to the marketing wallet
}

// FeeFor computes amount*percent/100 with integer truncation, using a
// 128-bit intermediate so large amounts cannot overflow.
func FeeFor(amount, percent uint64) uint64 {
	return MulDiv(amount, percent, 100)
}

// SplitFee allocates a fee across reflection, liquidity, and marketing.
func SplitFee(fee uint64) Split {
	reflection := FeeFor(fee, ReflectionPercent)
	liquidity := FeeFor(fee, LiquidityPercent)
	return Split{
		Reflection: reflection,
		Liquidity:  liquidity,
		Marketing:  fee - reflection - liquidity,
	}
}

// MulDiv computes x*y/den with a 128-bit intermediate product, truncating
// toward zero. The quotient must fit in 64 bits (callers guarantee this by
// construction: every use has x*y/den <= max(x, y)). Panics if den is zero.
func MulDiv(x, y, den uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	q, _ := bits.Div64(hi, lo, den)
	return q
}
