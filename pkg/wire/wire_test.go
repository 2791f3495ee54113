package wire

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	wireerr "github.com/sessamekesh/waygate/pkg/errors"
)

type shape interface{ isShape() }

type point struct{}

type circle struct {
	Radius uint32
}

type rect struct {
	W, H  int16
	Label string
}

func (point) isShape()  {}
func (circle) isShape() {}
func (rect) isShape()   {}

type unregistered interface{ isUnregistered() }

type outcome uint32

const (
	outcomeWin outcome = iota
	outcomeLose
	outcomeDraw
)

func (outcome) VariantCount() uint32 { return 3 }

type record struct {
	Flag   bool
	Small  int8
	Short  uint16
	Word   int32
	Long   uint64
	Ratio  float32
	Name   string
	Blob   []byte
	Ids    []int32
	Fixed  [3]uint8
	Maybe  *uint32
	Kind   shape
	Shapes []shape
	Result outcome
	hidden int
}

func init() {
	RegisterEnum[shape](point{}, circle{}, rect{})
}

func expectError[T error](t *testing.T, err error) T {
	t.Helper()

	var target T
	if !errors.As(err, &target) {
		t.Fatalf("error = %v, want %T", err, target)
	}
	return target
}

func TestPrimitiveLayout(t *testing.T) {
	v := struct {
		A uint8
		B int16
		C uint32
		D bool
		E string
		F []uint16
	}{A: 1, B: -2, C: 0x01020304, D: true, E: "hi", F: []uint16{5}}

	got, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := []byte{
		0x01,
		0xfe, 0xff,
		0x04, 0x03, 0x02, 0x01,
		0x01,
		0x02, 0x00, 0x00, 0x00, 'h', 'i',
		0x01, 0x00, 0x00, 0x00, 0x05, 0x00,
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = %x, want %x", got, want)
	}
}

func TestEnumDiscriminantsFollowRegistrationOrder(t *testing.T) {
	cases := []struct {
		value shape
		want  []byte
	}{
		{point{}, []byte{0, 0, 0, 0}},
		{circle{Radius: 7}, []byte{1, 0, 0, 0, 7, 0, 0, 0}},
		{rect{W: 1, H: 2, Label: "a"}, []byte{2, 0, 0, 0, 1, 0, 2, 0, 1, 0, 0, 0, 'a'}},
	}

	for _, c := range cases {
		got, err := Encode(c.value)
		if err != nil {
			t.Fatalf("Encode(%#v) error = %v", c.value, err)
		}
		if !bytes.Equal(got, c.want) {
			t.Fatalf("Encode(%#v) = %x, want %x", c.value, got, c.want)
		}

		back, err := Decode[shape](got)
		if err != nil {
			t.Fatalf("Decode(%x) error = %v", got, err)
		}
		if !reflect.DeepEqual(back, c.value) {
			t.Fatalf("Decode(%x) = %#v, want %#v", got, back, c.value)
		}
	}
}

func TestPointerVariantEncodesLikeValue(t *testing.T) {
	byPointer, err := Encode[shape](&circle{Radius: 3})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	byValue, _ := Encode[shape](circle{Radius: 3})
	if !bytes.Equal(byPointer, byValue) {
		t.Fatalf("pointer variant = %x, want %x", byPointer, byValue)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	maybe := uint32(99)
	in := record{
		Flag:   true,
		Small:  -5,
		Short:  65000,
		Word:   -123456,
		Long:   1 << 40,
		Ratio:  -45.939575,
		Name:   "Tarnished",
		Blob:   []byte{1, 2, 3},
		Ids:    []int32{4, -5},
		Fixed:  [3]uint8{7, 8, 9},
		Maybe:  &maybe,
		Kind:   rect{W: 3, H: 4, Label: "ring"},
		Shapes: []shape{point{}, circle{Radius: 1}},
		Result: outcomeDraw,
		hidden: 42,
	}

	encoded, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	out, err := Decode[record](encoded)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	in.hidden = 0
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip = %#v, want %#v", out, in)
	}
}

func TestMarshalUnmarshalThroughPointers(t *testing.T) {
	var s shape = circle{Radius: 12}
	encoded, err := Marshal(&s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back shape
	if err := Unmarshal(encoded, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != s {
		t.Fatalf("Unmarshal() = %#v, want %#v", back, s)
	}

	if err := Unmarshal(encoded, back); err == nil {
		t.Fatalf("Unmarshal() into non-pointer succeeded")
	}
}

func TestOptionEncoding(t *testing.T) {
	var absent *uint16
	got, _ := Encode(absent)
	if !bytes.Equal(got, []byte{0}) {
		t.Fatalf("Encode(nil) = %x, want 00", got)
	}

	present := uint16(0x0102)
	got, _ = Encode(&present)
	if !bytes.Equal(got, []byte{1, 0x02, 0x01}) {
		t.Fatalf("Encode(&v) = %x, want 010201", got)
	}

	_, err := Decode[*uint16]([]byte{2, 0, 0})
	if v := expectError[*wireerr.InvalidValue](t, err); v.Value != 2 {
		t.Fatalf("InvalidValue.Value = %d, want 2", v.Value)
	}
}

func TestBadVariantNeverPanics(t *testing.T) {
	_, err := Decode[shape]([]byte{3, 0, 0, 0})
	if v := expectError[*wireerr.InvalidEnumValue](t, err); v.IntValue != 3 {
		t.Fatalf("IntValue = %d, want 3", v.IntValue)
	}

	_, err = Decode[shape]([]byte{0xff, 0xff, 0xff, 0xff})
	expectError[*wireerr.InvalidEnumValue](t, err)

	_, err = Decode[outcome]([]byte{3, 0, 0, 0})
	expectError[*wireerr.InvalidEnumValue](t, err)

	_, err = Encode(outcome(9))
	expectError[*wireerr.InvalidEnumValue](t, err)
}

func TestBadBool(t *testing.T) {
	_, err := Decode[bool]([]byte{2})
	if v := expectError[*wireerr.InvalidValue](t, err); v.TypeName != "bool" {
		t.Fatalf("TypeName = %q, want bool", v.TypeName)
	}
}

func TestInvalidUtf8(t *testing.T) {
	_, err := Decode[string]([]byte{2, 0, 0, 0, 0xff, 0xfe})
	expectError[*wireerr.InvalidUtf8](t, err)
}

func TestEveryTruncationIsUnderflow(t *testing.T) {
	maybe := uint32(1)
	encoded, err := Encode(record{
		Name:   "abc",
		Blob:   []byte{1},
		Ids:    []int32{1, 2},
		Maybe:  &maybe,
		Kind:   rect{Label: "x"},
		Shapes: []shape{circle{}},
	})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	for n := 0; n < len(encoded); n++ {
		_, err := Decode[record](encoded[:n])
		expectError[*wireerr.Underflow](t, err)
	}
}

func TestLengthPrefixLargerThanInput(t *testing.T) {
	huge := []byte{0xff, 0xff, 0xff, 0xff}

	_, err := Decode[[]uint32](huge)
	expectError[*wireerr.Underflow](t, err)

	_, err = Decode[[]byte](huge)
	expectError[*wireerr.Underflow](t, err)

	_, err = Decode[string](huge)
	expectError[*wireerr.Underflow](t, err)

	_, err = Decode[[]struct{}](huge)
	expectError[*wireerr.SizeOverflow](t, err)
}

func TestUnsupportedTypes(t *testing.T) {
	_, err := Encode(map[string]int32{"a": 1})
	expectError[*wireerr.UnsupportedType](t, err)

	_, err = Decode[map[string]int32]([]byte{0, 0, 0, 0})
	expectError[*wireerr.UnsupportedType](t, err)

	_, err = Encode(int(1))
	expectError[*wireerr.UnsupportedType](t, err)

	_, err = Encode(make(chan uint32))
	expectError[*wireerr.SizelessSequence](t, err)

	_, err = Decode[any]([]byte{0, 0, 0, 0})
	expectError[*wireerr.NotSelfDescribing](t, err)

	_, err = Decode[unregistered]([]byte{0, 0, 0, 0})
	expectError[*wireerr.NotSelfDescribing](t, err)

	var nilShape shape
	_, err = Encode(nilShape)
	expectError[*wireerr.UnsupportedType](t, err)
}

func TestTrailingBytesIgnored(t *testing.T) {
	v, err := Decode[uint16]([]byte{1, 0, 0xaa, 0xbb})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if v != 1 {
		t.Fatalf("Decode() = %d, want 1", v)
	}
}

func TestVariantsAndDiscriminant(t *testing.T) {
	variants := Variants[shape]()
	if len(variants) != 3 {
		t.Fatalf("len(Variants) = %d, want 3", len(variants))
	}

	for i, v := range variants {
		d, ok := Discriminant(v)
		if !ok || d != uint32(i) {
			t.Fatalf("Discriminant(%T) = %d, %v, want %d", v, d, ok, i)
		}
	}
}
