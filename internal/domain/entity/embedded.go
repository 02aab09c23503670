package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONList is a list of typed sub-records persisted as a JSON text column.
//
// Scanning never fails: a column that does not decode leaves Items empty,
// keeps the stored text in Raw and records the decode error in Err. Callers
// that aggregate many rows can then quarantine the record instead of
// aborting the whole query.
type JSONList[T any] struct {
	Items []T
	Raw   string
	Err   error
}

// NewJSONList wraps already-typed items.
func NewJSONList[T any](items ...T) JSONList[T] {
	return JSONList[T]{Items: items}
}

// DecodeJSONList decodes raw column text the same way Scan does.
func DecodeJSONList[T any](raw string) JSONList[T] {
	var l JSONList[T]
	_ = l.Scan(raw)
	return l
}

// Valid reports whether the stored JSON decoded cleanly.
func (l JSONList[T]) Valid() bool {
	return l.Err == nil
}

// Len returns the number of decoded items (0 for a malformed list).
func (l JSONList[T]) Len() int {
	return len(l.Items)
}

func (l JSONList[T]) GormDataType() string {
	return "text"
}

func (l JSONList[T]) Value() (driver.Value, error) {
	if l.Err != nil {
		// keep the original bytes rather than overwrite them with an empty list
		return l.Raw, nil
	}
	items := l.Items
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *JSONList[T]) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*l = JSONList[T]{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		*l = JSONList[T]{Err: fmt.Errorf("unsupported column type %T", value)}
		return nil
	}

	if raw == "" {
		*l = JSONList[T]{}
		return nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		*l = JSONList[T]{Raw: raw, Err: err}
		return nil
	}
	*l = JSONList[T]{Items: items}
	return nil
}

func (l JSONList[T]) MarshalJSON() ([]byte, error) {
	if l.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.Items)
}

func (l *JSONList[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = JSONList[T]{Items: items}
	return nil
}
