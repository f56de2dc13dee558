package models

import "fmt"

// Cents is a monetary amount in integer minor units.
// Using integers end to end makes split reconciliation exact: the sum of a
// resolved split always equals the obligation amount, no epsilon needed.
type Cents int64

// Dollars returns the amount as a float for display and rate math.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// String formats the amount as a plain decimal, e.g. "1234.56".
func (c Cents) String() string {
	sign := ""
	v := c
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
