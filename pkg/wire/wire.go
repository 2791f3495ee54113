// Package wire implements the compact, non-self-describing binary format the
// game client speaks.
//
// Fixed-width integers are little endian. Strings, byte buffers and slices
// carry a u32 length prefix. Structs, arrays and tuples are written field by
// field with no framing. Enums are sealed interfaces registered with
// RegisterEnum and travel as a u32 discriminant followed by the variant's
// fields. Pointers are optional values behind a single 0/1 byte.
//
// Decoding always targets a statically known type. Maps and unregistered
// interfaces are rejected.
package wire

import (
	"reflect"

	"github.com/sessamekesh/waygate/pkg/errors"
)

// Encode serializes v using its static type T, so an interface-typed T is
// written as an enum.
func Encode[T any](v T) ([]byte, error) {
	return Append(make([]byte, 0, 64), v)
}

// Append serializes v onto the end of buf.
func Append[T any](buf []byte, v T) ([]byte, error) {
	e := encoder{buf: buf}
	if err := e.encode(reflect.ValueOf(&v).Elem()); err != nil {
		return nil, err
	}
	return e.buf, nil
}

// Decode deserializes data into a fresh T. Trailing bytes are ignored.
func Decode[T any](data []byte) (T, error) {
	var out T
	d := decoder{data: data}
	if err := d.decode(reflect.ValueOf(&out).Elem()); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Marshal serializes the value v points to, or v itself when it is not a
// pointer.
func Marshal(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, &errors.UnsupportedType{TypeName: "nil"}
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, &errors.UnsupportedType{TypeName: rv.Type().String()}
		}
		rv = rv.Elem()
	}

	e := encoder{buf: make([]byte, 0, 64)}
	if err := e.encode(rv); err != nil {
		return nil, err
	}
	return e.buf, nil
}

// Unmarshal deserializes data into the value v points to.
func Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &errors.WireError{Message: "Unmarshal needs a non-nil pointer"}
	}

	d := decoder{data: data}
	return d.decode(rv.Elem())
}
