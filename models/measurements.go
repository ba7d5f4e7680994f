package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MeasurementValue holds either a number (inches or cm) or free text such
// as "Churidar". It marshals to a bare JSON number or string.
type MeasurementValue struct {
	num    float64
	text   string
	isText bool
}

func NumberValue(f float64) MeasurementValue {
	return MeasurementValue{num: f}
}

func TextValue(s string) MeasurementValue {
	return MeasurementValue{text: s, isText: true}
}

func (v MeasurementValue) IsNumber() bool {
	return !v.isText
}

// Float returns the numeric value; ok is false for text values.
func (v MeasurementValue) Float() (float64, bool) {
	if v.isText {
		return 0, false
	}
	return v.num, true
}

func (v MeasurementValue) String() string {
	if v.isText {
		return v.text
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

func (v MeasurementValue) MarshalJSON() ([]byte, error) {
	if v.isText {
		return json.Marshal(v.text)
	}
	return json.Marshal(v.num)
}

func (v *MeasurementValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = TextValue("")
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("measurement must be a number or text: %w", err)
	}
	*v = NumberValue(f)
	return nil
}

// Measurements maps catalog keys to values. Stored as jsonb.
type Measurements map[string]MeasurementValue

func (m Measurements) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *Measurements) Scan(value interface{}) error {
	var b []byte
	switch v := value.(type) {
	case nil:
		*m = Measurements{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}
	out := Measurements{}
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// UnknownMeasurementError reports a key outside the garment's catalog.
type UnknownMeasurementError struct {
	Garment GarmentType
	Key     string
}

func (e *UnknownMeasurementError) Error() string {
	return fmt.Sprintf("measurement %q is not used for %s", e.Key, e.Garment.Label())
}

// NormalizeMeasurements trims every value, drops blanks and turns numeric
// text into numbers. Keys must belong to the garment's catalog.
func NormalizeMeasurements(g GarmentType, raw Measurements) (Measurements, error) {
	out := Measurements{}
	for key, val := range raw {
		key = strings.TrimSpace(key)
		if !g.Allows(key) {
			return nil, &UnknownMeasurementError{Garment: g, Key: key}
		}
		if val.IsNumber() {
			if math.IsNaN(val.num) || math.IsInf(val.num, 0) {
				continue
			}
			out[key] = val
			continue
		}
		text := strings.TrimSpace(val.text)
		if text == "" {
			continue
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			out[key] = NumberValue(f)
			continue
		}
		out[key] = TextValue(text)
	}
	return out, nil
}
