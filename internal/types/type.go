package types

import (
	"strconv"
	"strings"
	"sync"
)

// Endianness selects the byte order for multi-byte primitives and varint
// payloads.
type Endianness uint8

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// IntMode selects how multi-byte integers, lengths, and discriminants are
// written: raw fixed width, or the prefix-discriminated varint scheme.
type IntMode uint8

const (
	IntVariant IntMode = iota
	IntFixed
)

func (m IntMode) String() string {
	if m == IntFixed {
		return "fixed"
	}
	return "variant"
}

// NoLimit disables the byte ceiling.
const NoLimit = ^uint64(0)

// Config carries the three orthogonal wire knobs. The zero value is the
// standard bincode configuration except for Limit, which must be NoLimit to
// disable the ceiling; construct configs through the package-level helpers.
type Config struct {
	Limit  uint64
	Endian Endianness
	Ints   IntMode
}

// EncodeFunc is a user-supplied encoder for a custom descriptor. It writes
// value into buf starting at offset and returns the offset past the last
// byte written.
type EncodeFunc func(buf []byte, offset int, value any, cfg Config) (int, error)

// DecodeFunc is a user-supplied decoder for a custom descriptor. It reads
// from buf starting at offset and returns the value and the offset past the
// last byte read.
type DecodeFunc func(buf []byte, offset int, cfg Config) (any, int, error)

// Type is a node of the runtime descriptor tree. A descriptor is immutable
// after construction and may be shared freely across goroutines.
type Type struct {
	Elem   *Type   // Array, Collection, Option
	Fields []Field // Struct fields; Tuple elements carry empty names
	Cases  []Case  // Enum variants, declaration order

	CustomEncode EncodeFunc
	CustomDecode DecodeFunc
	CustomName   string

	Len  int // Array fixed size
	Kind Kind

	discOnce  sync.Once
	discIndex map[uint32]int
	discDup   bool
}

// Field is one (name, descriptor) pair of a struct, or one unnamed tuple
// element.
type Field struct {
	Type *Type
	Name string
}

// Case is one declared enum variant. Payload is nil for dataless variants.
type Case struct {
	Payload      *Type
	Name         string
	Discriminant uint32
}

// CaseByDiscriminant returns the index of the variant carrying disc, or -1.
// The index is built once per descriptor and reused; ok is false when the
// descriptor violates the discriminant-uniqueness invariant.
func (t *Type) CaseByDiscriminant(disc uint32) (idx int, ok bool) {
	t.discOnce.Do(func() {
		t.discIndex = make(map[uint32]int, len(t.Cases))
		for i, c := range t.Cases {
			if _, exists := t.discIndex[c.Discriminant]; exists {
				t.discDup = true
				return
			}
			t.discIndex[c.Discriminant] = i
		}
	})
	if t.discDup {
		return 0, false
	}
	idx, found := t.discIndex[disc]
	if !found {
		return -1, true
	}
	return idx, true
}

// CaseByName returns the variant named name, or nil.
func (t *Type) CaseByName(name string) *Case {
	for i := range t.Cases {
		if t.Cases[i].Name == name {
			return &t.Cases[i]
		}
	}
	return nil
}

// String renders the shape one level deep, e.g.
// "struct{name: string, age: u8}" or "collection<u32>".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindTuple:
		if len(t.Fields) == 0 {
			return "unit"
		}
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.Type.Kind.String()
		}
		return "tuple(" + strings.Join(parts, ", ") + ")"
	case KindArray:
		return "array<" + t.Elem.Kind.String() + "; " + strconv.Itoa(t.Len) + ">"
	case KindCollection:
		return "collection<" + t.Elem.Kind.String() + ">"
	case KindOption:
		return "option<" + t.Elem.Kind.String() + ">"
	case KindStruct:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = f.Name + ": " + f.Type.Kind.String()
		}
		return "struct{" + strings.Join(parts, ", ") + "}"
	case KindEnum:
		parts := make([]string, len(t.Cases))
		for i, c := range t.Cases {
			parts[i] = c.Name + "=" + strconv.FormatUint(uint64(c.Discriminant), 10)
		}
		return "enum{" + strings.Join(parts, ", ") + "}"
	case KindCustom:
		if t.CustomName != "" {
			return "custom(" + t.CustomName + ")"
		}
		return "custom"
	default:
		return t.Kind.String()
	}
}
