package stock

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errNotObject = errors.New("payload is not a JSON object")

type quoteWire struct {
	C  *float64        `json:"c"`
	PC *float64        `json:"pc"`
	O  json.RawMessage `json:"o"`
	H  json.RawMessage `json:"h"`
	L  json.RawMessage `json:"l"`
	T  json.RawMessage `json:"t"`
}

// DecodeQuote parses a quote payload. Only c and pc must be numbers or
// null. o, h, l and t are best effort: a value of the wrong type is dropped
// and unknown fields are ignored.
func DecodeQuote(b []byte) (Quote, error) {
	if err := expectObject(b); err != nil {
		return Quote{}, DecodeFailure(err)
	}
	var w quoteWire
	if err := json.Unmarshal(b, &w); err != nil {
		return Quote{}, DecodeFailure(fmt.Errorf("quote: %w", err))
	}
	q := Quote{
		CurrentPrice:  w.C,
		PreviousClose: w.PC,
		Open:          optionalFloat(w.O),
		High:          optionalFloat(w.H),
		Low:           optionalFloat(w.L),
	}
	if len(w.T) > 0 {
		var ts int64
		if err := json.Unmarshal(w.T, &ts); err == nil {
			q.Timestamp = ts
		}
	}
	return q, nil
}

// optionalFloat returns nil for a missing, null or non-numeric value.
func optionalFloat(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var v *float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// DecodeCompanyProfile parses a company profile payload.
func DecodeCompanyProfile(b []byte) (CompanyProfile, error) {
	if err := expectObject(b); err != nil {
		return CompanyProfile{}, DecodeFailure(err)
	}
	var p CompanyProfile
	if err := json.Unmarshal(b, &p); err != nil {
		return CompanyProfile{}, DecodeFailure(fmt.Errorf("company profile: %w", err))
	}
	return p, nil
}

// expectObject rejects payloads json.Unmarshal would silently accept
// into a struct, such as a bare null.
func expectObject(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}
	return nil
}
