package models

import (
	"database/sql/driver"
	"fmt"
)

// enumTable is a fixed bijection between the variants of one enum type and
// their wire/storage names. Built once per enum at package init.
type enumTable[T comparable] struct {
	kind   string
	names  map[T]string
	byName map[string]T
}

func newEnumTable[T comparable](kind string, names map[T]string) enumTable[T] {
	byName := make(map[string]T, len(names))
	for v, n := range names {
		if _, dup := byName[n]; dup {
			panic(fmt.Sprintf("models: duplicate %s name %q", kind, n))
		}
		byName[n] = v
	}
	return enumTable[T]{kind: kind, names: names, byName: byName}
}

func (t enumTable[T]) name(v T) (string, bool) {
	n, ok := t.names[v]
	return n, ok
}

func (t enumTable[T]) parse(s string) (T, error) {
	v, ok := t.byName[s]
	if !ok {
		var zero T
		return zero, fmt.Errorf("invalid %s %q", t.kind, s)
	}
	return v, nil
}

func (t enumTable[T]) scan(src interface{}) (T, error) {
	var zero T
	switch s := src.(type) {
	case string:
		return t.parse(s)
	case []byte:
		return t.parse(string(s))
	case nil:
		return zero, fmt.Errorf("invalid %s: NULL", t.kind)
	default:
		return zero, fmt.Errorf("invalid %s type %T", t.kind, src)
	}
}

func (t enumTable[T]) value(v T) (driver.Value, error) {
	n, ok := t.names[v]
	if !ok {
		return nil, fmt.Errorf("invalid %s value %v", t.kind, v)
	}
	return n, nil
}
