package polymarket

import (
	"encoding/json"
	"strconv"
)

// Raw Gamma API DTOs. Only used inside this package; conversion to domain
// entities happens in mapping.go.
//
// Gamma is inconsistent about encodings: numeric fields arrive sometimes as
// JSON numbers and sometimes as strings, and list fields arrive sometimes as
// arrays and sometimes as JSON-encoded strings. The flex types absorb both.

// gammaMarket is one market record from GET /markets.
type gammaMarket struct {
	ID            string     `json:"id"`
	ConditionID   string     `json:"condition_id"`
	Question      string     `json:"question"`
	Slug          string     `json:"slug"`
	Outcomes      flexList   `json:"outcomes"`
	OutcomePrices flexFloats `json:"outcomePrices"`
	Volume        flexFloat  `json:"volume"`
	Liquidity     flexFloat  `json:"liquidity"`
	EndDate       string     `json:"endDate"`
	Active        bool       `json:"active"`
}

// flexFloat decodes a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*f = flexFloat(v)
		}
		// Unparsable string → keep zero, the mapper supplies defaults.
		return nil
	}

	*f = 0
	return nil
}

// flexList decodes a JSON string array or a string containing one.
type flexList []string

func (l *flexList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var nested []string
		if err := json.Unmarshal([]byte(s), &nested); err == nil {
			*l = nested
		}
		return nil
	}

	*l = nil
	return nil
}

// flexFloats decodes an array of numbers-or-numeric-strings, or a string
// containing such an array.
type flexFloats []float64

func (f *flexFloats) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = nil
			return nil
		}
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			*f = nil
			return nil
		}
	}

	out := make([]float64, 0, len(raw))
	for _, r := range raw {
		var ff flexFloat
		if err := ff.UnmarshalJSON(r); err == nil {
			out = append(out, float64(ff))
		}
	}
	*f = out
	return nil
}
