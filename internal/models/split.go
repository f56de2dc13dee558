package models

import (
	"encoding/json"
	"fmt"
)

// SplitMode determines how a split entry's Value is interpreted.
type SplitMode int

const (
	// SplitFixedAmount: Value is the person's share in cents, trusted as-is.
	SplitFixedAmount SplitMode = iota
	// SplitPercent: Value is a percentage weight; weights are normalized so
	// they need not literally sum to 100.
	SplitPercent
	// SplitShares: Value is a unitless share count; the divisor is the sum
	// over active entries only.
	SplitShares
)

var splitModeNames = map[SplitMode]string{
	SplitFixedAmount: "fixed",
	SplitPercent:     "percent",
	SplitShares:      "shares",
}

// String returns the stable wire/database name for the mode.
func (m SplitMode) String() string {
	if name, ok := splitModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("SplitMode(%d)", int(m))
}

// ParseSplitMode converts a stored mode name back to a SplitMode.
func ParseSplitMode(s string) (SplitMode, error) {
	for mode, name := range splitModeNames {
		if name == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown split mode: %q", s)
}

// MarshalJSON encodes the mode as its string name.
func (m SplitMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes the mode from its string name.
func (m *SplitMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	mode, err := ParseSplitMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// SplitEntry assigns a split value to one person. The meaning of Value
// depends on the obligation's SplitMode: cents for fixed splits, a
// percentage or share weight otherwise.
type SplitEntry struct {
	PersonID string  `json:"person_id"`
	Value    float64 `json:"value"`
}
