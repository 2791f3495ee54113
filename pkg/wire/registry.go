package wire

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/sessamekesh/waygate/pkg/errors"
)

// VariantCounter is implemented by C-like enums that travel as a bare u32.
// Decoding rejects any value at or above VariantCount.
type VariantCounter interface {
	VariantCount() uint32
}

var variantCounterType = reflect.TypeOf((*VariantCounter)(nil)).Elem()

type enumInfo struct {
	name     string
	variants []reflect.Type
	index    map[reflect.Type]uint32
}

var (
	mut_enums sync.RWMutex
	enums     = make(map[reflect.Type]*enumInfo)
)

// RegisterEnum declares the closed set of variants for the interface type I.
// Discriminants are assigned in argument order starting at zero, so the
// order of the arguments is part of the wire contract.
//
// Registration is meant to run from init functions and panics on misuse.
func RegisterEnum[I any](variants ...I) {
	iface := reflect.TypeOf((*I)(nil)).Elem()
	if iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("wire: RegisterEnum needs an interface type, got %s", iface))
	}

	info := &enumInfo{
		name:     iface.String(),
		variants: make([]reflect.Type, 0, len(variants)),
		index:    make(map[reflect.Type]uint32, len(variants)),
	}

	for i, variant := range variants {
		t := reflect.TypeOf(any(variant))
		if t == nil {
			panic(fmt.Sprintf("wire: nil variant at position %d of %s", i, info.name))
		}
		if _, has := info.index[t]; has {
			panic(&errors.NameCollision{CollisionContext: info.name, Name: t.String()})
		}

		info.index[t] = uint32(i)
		info.variants = append(info.variants, t)
	}

	mut_enums.Lock()
	defer mut_enums.Unlock()

	if _, has := enums[iface]; has {
		panic(&errors.NameCollision{CollisionContext: "wire enums", Name: info.name})
	}
	enums[iface] = info
}

func lookupEnum(iface reflect.Type) (*enumInfo, bool) {
	mut_enums.RLock()
	defer mut_enums.RUnlock()

	info, has := enums[iface]
	return info, has
}

// Variants returns the zero value of every registered variant of I, in
// discriminant order.
func Variants[I any]() []I {
	info, has := lookupEnum(reflect.TypeOf((*I)(nil)).Elem())
	if !has {
		return nil
	}

	out := make([]I, 0, len(info.variants))
	for _, t := range info.variants {
		out = append(out, reflect.New(t).Elem().Interface().(I))
	}
	return out
}

// Discriminant reports the wire discriminant of variant within the enum I.
func Discriminant[I any](variant I) (uint32, bool) {
	info, has := lookupEnum(reflect.TypeOf((*I)(nil)).Elem())
	if !has {
		return 0, false
	}

	t := reflect.TypeOf(any(variant))
	if t == nil {
		return 0, false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	idx, ok := info.index[t]
	return idx, ok
}
