package calculator

import (
	"math"
	"sort"

	"github.com/mmynk/homebills/internal/models"
)

// WeightedShare is one participant's raw (possibly fractional) share of a
// total, expressed in cents.
type WeightedShare struct {
	Key string
	Raw float64
}

// Allocation is one participant's final whole-cent share.
type Allocation struct {
	Key    string
	Amount models.Cents
}

// Allocate turns fractional cent shares into whole-cent amounts that sum
// exactly to total. Each share is floored, then the leftover cents go to the
// entries with the largest fractional remainders (largest-remainder method).
// Ties break by ascending key, so the result is independent of input order.
//
// Callers guarantee shares are non-negative and approximately sum to total;
// the leftover is then 0..len(shares) cents.
func Allocate(total models.Cents, shares []WeightedShare) []Allocation {
	if len(shares) == 0 {
		return nil
	}

	type entry struct {
		key    string
		amount int64
		frac   float64
	}
	entries := make([]entry, len(shares))
	var floorSum int64
	for i, s := range shares {
		floor := math.Floor(s.Raw)
		entries[i] = entry{key: s.Key, amount: int64(floor), frac: s.Raw - floor}
		floorSum += int64(floor)
	}

	shortfall := int64(total) - floorSum
	if shortfall > 0 {
		order := make([]int, len(entries))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			ea, eb := entries[order[a]], entries[order[b]]
			if ea.frac != eb.frac {
				return ea.frac > eb.frac
			}
			return ea.key < eb.key
		})
		// Cycling covers the pathological case of a shortfall larger than
		// the entry count (miscomputed shares upstream).
		for i := int64(0); i < shortfall; i++ {
			entries[order[i%int64(len(order))]].amount++
		}
	}

	result := make([]Allocation, len(entries))
	for i, e := range entries {
		result[i] = Allocation{Key: e.key, Amount: models.Cents(e.amount)}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].Key < result[b].Key })
	return result
}
