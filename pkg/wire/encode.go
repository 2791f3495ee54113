package wire

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/sessamekesh/waygate/pkg/errors"
)

type encoder struct {
	buf []byte
}

func (e *encoder) appendLength(n int) error {
	if uint64(n) > math.MaxUint32 {
		return &errors.SizeOverflow{Size: uint64(n)}
	}
	e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(n))
	return nil
}

func (e *encoder) encode(v reflect.Value) error {
	t := v.Type()

	switch t.Kind() {
	case reflect.Interface:
		return e.encodeEnum(v)
	case reflect.Bool:
		if v.Bool() {
			e.buf = append(e.buf, 1)
		} else {
			e.buf = append(e.buf, 0)
		}
	case reflect.Int8:
		e.buf = append(e.buf, byte(v.Int()))
	case reflect.Uint8:
		e.buf = append(e.buf, byte(v.Uint()))
	case reflect.Int16:
		e.buf = binary.LittleEndian.AppendUint16(e.buf, uint16(v.Int()))
	case reflect.Uint16:
		e.buf = binary.LittleEndian.AppendUint16(e.buf, uint16(v.Uint()))
	case reflect.Int32:
		e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(v.Int()))
	case reflect.Uint32:
		if t.Implements(variantCounterType) {
			count := v.Interface().(VariantCounter).VariantCount()
			if uint32(v.Uint()) >= count {
				return &errors.InvalidEnumValue{EnumName: t.String(), IntValue: uint32(v.Uint())}
			}
		}
		e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(v.Uint()))
	case reflect.Int64:
		e.buf = binary.LittleEndian.AppendUint64(e.buf, uint64(v.Int()))
	case reflect.Uint64:
		e.buf = binary.LittleEndian.AppendUint64(e.buf, v.Uint())
	case reflect.Float32:
		e.buf = binary.LittleEndian.AppendUint32(e.buf, math.Float32bits(float32(v.Float())))
	case reflect.Float64:
		e.buf = binary.LittleEndian.AppendUint64(e.buf, math.Float64bits(v.Float()))
	case reflect.String:
		s := v.String()
		if err := e.appendLength(len(s)); err != nil {
			return err
		}
		e.buf = append(e.buf, s...)
	case reflect.Slice:
		if err := e.appendLength(v.Len()); err != nil {
			return err
		}
		if t.Elem().Kind() == reflect.Uint8 {
			e.buf = append(e.buf, v.Bytes()...)
			return nil
		}
		for i := 0; i < v.Len(); i++ {
			if err := e.encode(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := e.encode(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := e.encode(v.Field(i)); err != nil {
				return err
			}
		}
	case reflect.Pointer:
		if v.IsNil() {
			e.buf = append(e.buf, 0)
			return nil
		}
		e.buf = append(e.buf, 1)
		return e.encode(v.Elem())
	case reflect.Chan:
		return &errors.SizelessSequence{TypeName: t.String()}
	default:
		// Maps, platform-width ints, complex numbers, funcs
		return &errors.UnsupportedType{TypeName: t.String()}
	}

	return nil
}

func (e *encoder) encodeEnum(v reflect.Value) error {
	info, has := lookupEnum(v.Type())
	if !has {
		return &errors.NotSelfDescribing{TypeName: v.Type().String()}
	}

	if v.IsNil() {
		return &errors.UnsupportedType{TypeName: "nil " + info.name}
	}

	variant := v.Elem()
	idx, has := info.index[variant.Type()]
	if !has && variant.Kind() == reflect.Pointer && !variant.IsNil() {
		variant = variant.Elem()
		idx, has = info.index[variant.Type()]
	}
	if !has {
		return &errors.UnsupportedType{TypeName: variant.Type().String()}
	}

	e.buf = binary.LittleEndian.AppendUint32(e.buf, idx)
	return e.encode(variant)
}
