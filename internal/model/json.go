package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONField wraps an optional JSON column with a typed payload.
// A NULL column scans to Valid=false; Valid=false stores NULL.
type JSONField[T any] struct {
	Data  T
	Valid bool
}

func NewJSONField[T any](data T) JSONField[T] {
	return JSONField[T]{Data: data, Valid: true}
}

func (f *JSONField[T]) Scan(src any) error {
	if src == nil {
		var zero T
		f.Data = zero
		f.Valid = false
		return nil
	}

	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONField", src)
	}

	err := json.Unmarshal(b, &f.Data)
	if err != nil {
		return err
	}

	f.Valid = true
	return nil
}

func (f JSONField[T]) Value() (driver.Value, error) {
	if !f.Valid {
		return nil, nil
	}
	b, err := json.Marshal(f.Data)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f JSONField[T]) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Data)
}

func (f *JSONField[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		var zero T
		f.Data = zero
		f.Valid = false
		return nil
	}

	err := json.Unmarshal(b, &f.Data)
	if err != nil {
		return err
	}

	f.Valid = true
	return nil
}
