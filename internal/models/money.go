package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Cents is an amount in minor currency units. It is stored and computed in
// cents and rendered in major units (5000 -> 50) at the JSON boundary.
type Cents int64

// CentsFromMajor rounds a major-unit amount to the nearest cent.
func CentsFromMajor(v float64) Cents {
	return Cents(math.Round(v * 100))
}

func (c Cents) Major() float64 {
	return float64(c) / 100
}

func (c Cents) String() string {
	return strconv.FormatFloat(c.Major(), 'f', 2, 64)
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(c.Major(), 'f', -1, 64)), nil
}

func (c *Cents) UnmarshalJSON(b []byte) error {
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("amount must be a number: %w", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt64/100 {
		return fmt.Errorf("amount out of range")
	}
	*c = CentsFromMajor(v)
	return nil
}
