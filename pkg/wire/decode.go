package wire

import (
	"encoding/binary"
	"math"
	"reflect"
	"sync"
	"unicode/utf8"

	"github.com/sessamekesh/waygate/pkg/errors"
)

// Upper bound on the element count of a sequence whose elements take no
// bytes on the wire, since the input length cannot bound those.
const maxZeroWidthSequence = 1 << 16

var byteType = reflect.TypeOf(byte(0))

type decoder struct {
	data []byte
	off  int
}

func (d *decoder) remaining() int {
	return len(d.data) - d.off
}

func (d *decoder) take(n int, name string) ([]byte, error) {
	if n < 0 || d.remaining() < n {
		return nil, &errors.Underflow{
			MessageName: name,
			MsgSize:     d.remaining(),
			MinimumSize: n,
		}
	}

	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) u32(name string) (uint32, error) {
	b, err := d.take(4, name)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *decoder) decode(v reflect.Value) error {
	t := v.Type()
	name := t.String()

	switch t.Kind() {
	case reflect.Interface:
		return d.decodeEnum(v)
	case reflect.Bool:
		b, err := d.take(1, name)
		if err != nil {
			return err
		}
		switch b[0] {
		case 0:
			v.SetBool(false)
		case 1:
			v.SetBool(true)
		default:
			return &errors.InvalidValue{TypeName: "bool", Value: uint64(b[0])}
		}
	case reflect.Int8:
		b, err := d.take(1, name)
		if err != nil {
			return err
		}
		v.SetInt(int64(int8(b[0])))
	case reflect.Uint8:
		b, err := d.take(1, name)
		if err != nil {
			return err
		}
		v.SetUint(uint64(b[0]))
	case reflect.Int16:
		b, err := d.take(2, name)
		if err != nil {
			return err
		}
		v.SetInt(int64(int16(binary.LittleEndian.Uint16(b))))
	case reflect.Uint16:
		b, err := d.take(2, name)
		if err != nil {
			return err
		}
		v.SetUint(uint64(binary.LittleEndian.Uint16(b)))
	case reflect.Int32:
		u, err := d.u32(name)
		if err != nil {
			return err
		}
		v.SetInt(int64(int32(u)))
	case reflect.Uint32:
		u, err := d.u32(name)
		if err != nil {
			return err
		}
		if t.Implements(variantCounterType) {
			count := reflect.Zero(t).Interface().(VariantCounter).VariantCount()
			if u >= count {
				return &errors.InvalidEnumValue{EnumName: name, IntValue: u}
			}
		}
		v.SetUint(uint64(u))
	case reflect.Int64:
		b, err := d.take(8, name)
		if err != nil {
			return err
		}
		v.SetInt(int64(binary.LittleEndian.Uint64(b)))
	case reflect.Uint64:
		b, err := d.take(8, name)
		if err != nil {
			return err
		}
		v.SetUint(binary.LittleEndian.Uint64(b))
	case reflect.Float32:
		u, err := d.u32(name)
		if err != nil {
			return err
		}
		v.SetFloat(float64(math.Float32frombits(u)))
	case reflect.Float64:
		b, err := d.take(8, name)
		if err != nil {
			return err
		}
		v.SetFloat(math.Float64frombits(binary.LittleEndian.Uint64(b)))
	case reflect.String:
		n, err := d.u32(name)
		if err != nil {
			return err
		}
		b, err := d.take(int(n), name)
		if err != nil {
			return err
		}
		if !utf8.Valid(b) {
			return &errors.InvalidUtf8{MessageName: name}
		}
		v.SetString(string(b))
	case reflect.Slice:
		return d.decodeSlice(v)
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := d.decode(v.Index(i)); err != nil {
				return err
			}
		}
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := d.decode(v.Field(i)); err != nil {
				return err
			}
		}
	case reflect.Pointer:
		b, err := d.take(1, name)
		if err != nil {
			return err
		}
		switch b[0] {
		case 0:
			v.Set(reflect.Zero(t))
		case 1:
			p := reflect.New(t.Elem())
			if err := d.decode(p.Elem()); err != nil {
				return err
			}
			v.Set(p)
		default:
			return &errors.InvalidValue{TypeName: "option", Value: uint64(b[0])}
		}
	default:
		return &errors.UnsupportedType{TypeName: name}
	}

	return nil
}

func (d *decoder) decodeSlice(v reflect.Value) error {
	t := v.Type()
	n, err := d.u32(t.String())
	if err != nil {
		return err
	}

	if t.Elem().Kind() == reflect.Uint8 {
		b, err := d.take(int(n), t.String())
		if err != nil {
			return err
		}
		s := reflect.MakeSlice(t, int(n), int(n))
		if t.Elem() == byteType {
			reflect.Copy(s, reflect.ValueOf(b))
		} else {
			for i, c := range b {
				s.Index(i).SetUint(uint64(c))
			}
		}
		v.Set(s)
		return nil
	}

	// Never allocate more than the remaining input could possibly fill.
	if elemSize := minEncodedSize(t.Elem()); elemSize > 0 {
		if uint64(n)*uint64(elemSize) > uint64(d.remaining()) {
			return &errors.Underflow{
				MessageName: t.String(),
				MsgSize:     d.remaining(),
				MinimumSize: int(uint64(n) * uint64(elemSize)),
			}
		}
	} else if n > maxZeroWidthSequence {
		return &errors.SizeOverflow{Size: uint64(n)}
	}

	s := reflect.MakeSlice(t, int(n), int(n))
	for i := 0; i < int(n); i++ {
		if err := d.decode(s.Index(i)); err != nil {
			return err
		}
	}
	v.Set(s)
	return nil
}

func (d *decoder) decodeEnum(v reflect.Value) error {
	info, has := lookupEnum(v.Type())
	if !has {
		return &errors.NotSelfDescribing{TypeName: v.Type().String()}
	}

	disc, err := d.u32(info.name)
	if err != nil {
		return err
	}
	if disc >= uint32(len(info.variants)) {
		return &errors.InvalidEnumValue{EnumName: info.name, IntValue: disc}
	}

	variant := reflect.New(info.variants[disc]).Elem()
	if err := d.decode(variant); err != nil {
		return err
	}
	v.Set(variant)
	return nil
}

var minSizes sync.Map // reflect.Type -> int

// minEncodedSize is the fewest bytes any value of t can occupy on the wire.
func minEncodedSize(t reflect.Type) int {
	if cached, ok := minSizes.Load(t); ok {
		return cached.(int)
	}

	size := 0
	switch t.Kind() {
	case reflect.Bool, reflect.Int8, reflect.Uint8, reflect.Pointer:
		size = 1
	case reflect.Int16, reflect.Uint16:
		size = 2
	case reflect.Int32, reflect.Uint32, reflect.Float32, reflect.String, reflect.Slice, reflect.Interface:
		size = 4
	case reflect.Int64, reflect.Uint64, reflect.Float64:
		size = 8
	case reflect.Array:
		size = t.Len() * minEncodedSize(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).IsExported() {
				size += minEncodedSize(t.Field(i).Type)
			}
		}
	}

	minSizes.Store(t, size)
	return size
}
