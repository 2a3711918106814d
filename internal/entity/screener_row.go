package entity

import (
	"bytes"
	"encoding/json"
)

// ScreenerRow is one screened security. Every attribute is optional: a nil
// pointer means the value was absent, null or not of the expected JSON type.
type ScreenerRow struct {
	Ticker  *string  `json:"ticker,omitempty"`
	Company *string  `json:"company,omitempty"`
	Sector  *string  `json:"sector,omitempty"`
	Score   *float64 `json:"score,omitempty"`
	Price   *float64 `json:"price,omitempty"`
	RSI     *float64 `json:"rsi,omitempty"`
	MA50    *float64 `json:"ma50,omitempty"`
	PvsMA50 *float64 `json:"p_vs_ma50,omitempty"`
	Ret3M   *float64 `json:"ret3m,omitempty"`
	RelVol  *float64 `json:"relvol,omitempty"`
	Pass    *bool    `json:"pass,omitempty"`
}

// ScreenerDataset is the document published by the screening pipeline.
type ScreenerDataset struct {
	UpdatedAt *string       `json:"updated_at"`
	Rows      []ScreenerRow `json:"rows"`
}

// UnmarshalJSON decodes a row leniently: a field with the wrong type degrades
// to missing instead of failing the whole dataset.
func (r *ScreenerRow) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = ScreenerRow{
		Ticker:  decodeOptional[string](raw["ticker"]),
		Company: decodeOptional[string](raw["company"]),
		Sector:  decodeOptional[string](raw["sector"]),
		Score:   decodeOptional[float64](raw["score"]),
		Price:   decodeOptional[float64](raw["price"]),
		RSI:     decodeOptional[float64](raw["rsi"]),
		MA50:    decodeOptional[float64](raw["ma50"]),
		PvsMA50: decodeOptional[float64](raw["p_vs_ma50"]),
		Ret3M:   decodeOptional[float64](raw["ret3m"]),
		RelVol:  decodeOptional[float64](raw["relvol"]),
		Pass:    decodeOptional[bool](raw["pass"]),
	}
	return nil
}

func decodeOptional[T any](raw json.RawMessage) *T {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil
	}
	return &v
}
