package errors

import "fmt"

// Underflow is returned whenever a decoder runs out of input before a value
// is complete.
type Underflow struct {
	MessageName string
	MsgSize     int
	MinimumSize int
}

func (e *Underflow) Error() string {
	return fmt.Sprintf("Message parsing underflowed (type=%s), provided %d bytes, needed at least %d", e.MessageName, e.MsgSize, e.MinimumSize)
}

type InvalidEnumValue struct {
	EnumName string
	IntValue uint32
}

func (e *InvalidEnumValue) Error() string {
	return fmt.Sprintf("Invalid enum value=%d (enum: %s)", e.IntValue, e.EnumName)
}

type InvalidValue struct {
	TypeName string
	Value    uint64
}

func (e *InvalidValue) Error() string {
	return fmt.Sprintf("Value %d is not valid for type %s", e.Value, e.TypeName)
}

type InvalidUtf8 struct {
	MessageName string
}

func (e *InvalidUtf8) Error() string {
	return fmt.Sprintf("Invalid UTF-8 sequence in %s", e.MessageName)
}

type UnsupportedType struct {
	TypeName string
}

func (e *UnsupportedType) Error() string {
	return fmt.Sprintf("Unsupported type %s", e.TypeName)
}

// NotSelfDescribing is returned when the codec is asked to work out a type
// from the bytes alone.
type NotSelfDescribing struct {
	TypeName string
}

func (e *NotSelfDescribing) Error() string {
	return fmt.Sprintf("Format is not self-describing, cannot handle %s", e.TypeName)
}

type SizelessSequence struct {
	TypeName string
}

func (e *SizelessSequence) Error() string {
	return fmt.Sprintf("Sequence of unknown size (type=%s)", e.TypeName)
}

type SizeOverflow struct {
	Size uint64
}

func (e *SizeOverflow) Error() string {
	return fmt.Sprintf("Sequence size overflow: %d", e.Size)
}

type WireError struct {
	Message string
}

func (e *WireError) Error() string {
	return fmt.Sprintf("Unspecified wire error: %s", e.Message)
}

type NameCollision struct {
	CollisionContext string
	Name             string
}

func (e *NameCollision) Error() string {
	return fmt.Sprintf("Name collision for name '%s' in context '%s'", e.Name, e.CollisionContext)
}
