package repository

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB stores V in a PostgreSQL jsonb column.
type JSONB[V any] struct {
	V V
}

func (j JSONB[V]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.V)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return string(b), nil
}

func (j *JSONB[V]) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		var zero V
		j.V = zero
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan jsonb: unsupported type %T", src)
	}
	return json.Unmarshal(raw, &j.V)
}
