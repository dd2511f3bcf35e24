// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fingerprint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
)

var (
	// ErrCyclicValue is returned when a value references one of its own
	// ancestors. Shared, acyclic sub-trees are accepted.
	ErrCyclicValue = errors.New("cyclic value cannot be canonicalized")
	// ErrUnsupportedValue is returned for values with no JSON form
	// (channels, functions, complex numbers, maps with non-string keys).
	ErrUnsupportedValue = errors.New("unsupported value")
)

// Canonical returns the canonical JSON form of v: object keys sorted in byte
// order, arrays in their original order, no HTML escaping, numbers in the
// shortest round-trip form and non-finite numbers written as null.
func Canonical(v any) ([]byte, error) {
	e := &encoder{ancestors: make(map[visit]struct{})}
	if err := e.encode(reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// visit identifies a reference-typed container on the current path.
type visit struct {
	ptr  uintptr
	len  int
	kind reflect.Kind
}

type encoder struct {
	buf       bytes.Buffer
	ancestors map[visit]struct{}
}

var (
	numberType    = reflect.TypeFor[json.Number]()
	marshalerType = reflect.TypeFor[json.Marshaler]()
)

func (e *encoder) encode(v reflect.Value) error {
	if !v.IsValid() {
		e.buf.WriteString("null")
		return nil
	}

	if v.Type() == numberType {
		return e.encodeNumber(json.Number(v.String()))
	}
	if v.Kind() != reflect.Interface && v.Kind() != reflect.Pointer && v.Type().Implements(marshalerType) {
		return e.encodeViaJSON(v)
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		return e.encode(v.Elem())
	case reflect.Pointer:
		if v.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		if v.Type().Implements(marshalerType) {
			return e.encodeViaJSON(v)
		}
		return e.enter(visit{ptr: v.Pointer(), kind: reflect.Pointer}, func() error {
			return e.encode(v.Elem())
		})
	case reflect.Bool:
		e.buf.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.String:
		return e.encodeString(v.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		e.buf.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		e.encodeFloat(v.Float(), v.Type().Bits())
	case reflect.Map:
		if v.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("%w: map key type %s", ErrUnsupportedValue, v.Type().Key())
		}
		return e.enter(visit{ptr: v.Pointer(), kind: reflect.Map}, func() error {
			return e.encodeMap(v)
		})
	case reflect.Slice:
		if v.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return e.encodeViaJSON(v)
		}
		return e.enter(visit{ptr: v.Pointer(), len: v.Len(), kind: reflect.Slice}, func() error {
			return e.encodeArray(v)
		})
	case reflect.Array:
		return e.encodeArray(v)
	case reflect.Struct:
		return e.encodeViaJSON(v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedValue, v.Type())
	}

	return nil
}

// enter runs fn with key pushed on the ancestor path.
func (e *encoder) enter(key visit, fn func() error) error {
	if _, ok := e.ancestors[key]; ok {
		return ErrCyclicValue
	}
	e.ancestors[key] = struct{}{}
	defer delete(e.ancestors, key)

	return fn()
}

func (e *encoder) encodeMap(v reflect.Value) error {
	entries := make(map[string]reflect.Value, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entries[iter.Key().String()] = iter.Value()
	}

	e.buf.WriteByte('{')
	for i, key := range slices.Sorted(maps.Keys(entries)) {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		if err := e.encodeString(key); err != nil {
			return err
		}
		e.buf.WriteByte(':')
		if err := e.encode(entries[key]); err != nil {
			return fmt.Errorf("%q: %w", key, err)
		}
	}
	e.buf.WriteByte('}')

	return nil
}

func (e *encoder) encodeArray(v reflect.Value) error {
	e.buf.WriteByte('[')
	for i := range v.Len() {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		if err := e.encode(v.Index(i)); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	e.buf.WriteByte(']')

	return nil
}

func (e *encoder) encodeString(s string) error {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	e.buf.Write(bytes.TrimSuffix(out.Bytes(), []byte{'\n'}))

	return nil
}

func (e *encoder) encodeNumber(n json.Number) error {
	if i, err := n.Int64(); err == nil {
		e.buf.WriteString(strconv.FormatInt(i, 10))
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("%w: number %q", ErrUnsupportedValue, n.String())
	}
	e.encodeFloat(f, 64)

	return nil
}

// encodeFloat writes f the way ECMAScript Number.prototype.toString does,
// which is also what encoding/json emits.
func (e *encoder) encodeFloat(f float64, bits int) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		e.buf.WriteString("null")
		return
	}
	if f == 0 {
		e.buf.WriteByte('0')
		return
	}

	format := byte('f')
	if abs := math.Abs(f); abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, f, format, -1, bits)
	if format == 'e' {
		// 1e-07 -> 1e-7
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	e.buf.Write(b)
}

// encodeViaJSON converts values with their own JSON form (structs, time.Time,
// byte slices) into a generic tree first, then canonicalizes the tree.
func (e *encoder) encodeViaJSON(v reflect.Value) error {
	raw, err := json.Marshal(v.Interface())
	if err != nil {
		var unsupported *json.UnsupportedValueError
		if errors.As(err, &unsupported) && bytes.Contains([]byte(unsupported.Str), []byte("cycle")) {
			return ErrCyclicValue
		}
		return fmt.Errorf("%w: %w", ErrUnsupportedValue, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err = dec.Decode(&tree); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedValue, err)
	}

	return e.encode(reflect.ValueOf(tree))
}
