package bincode

// Primitive descriptors are singletons: a descriptor is immutable after
// construction, so every call can hand out the same node.
var (
	boolType   = &Type{Kind: KindBool}
	u8Type     = &Type{Kind: KindU8}
	i8Type     = &Type{Kind: KindI8}
	u16Type    = &Type{Kind: KindU16}
	i16Type    = &Type{Kind: KindI16}
	u32Type    = &Type{Kind: KindU32}
	i32Type    = &Type{Kind: KindI32}
	u64Type    = &Type{Kind: KindU64}
	i64Type    = &Type{Kind: KindI64}
	u128Type   = &Type{Kind: KindU128}
	i128Type   = &Type{Kind: KindI128}
	f16Type    = &Type{Kind: KindF16}
	f32Type    = &Type{Kind: KindF32}
	f64Type    = &Type{Kind: KindF64}
	f128Type   = &Type{Kind: KindF128}
	stringType = &Type{Kind: KindString}
	unitType   = &Type{Kind: KindTuple}
)

func Bool() *Type   { return boolType }
func U8() *Type     { return u8Type }
func I8() *Type     { return i8Type }
func U16() *Type    { return u16Type }
func I16() *Type    { return i16Type }
func U32() *Type    { return u32Type }
func I32() *Type    { return i32Type }
func U64() *Type    { return u64Type }
func I64() *Type    { return i64Type }
func U128() *Type   { return u128Type }
func I128() *Type   { return i128Type }
func F32() *Type    { return f32Type }
func F64() *Type    { return f64Type }
func String() *Type { return stringType }

// F16 and F128 are reserved: the engine fails with Unimplemented when it
// reaches one.
func F16() *Type  { return f16Type }
func F128() *Type { return f128Type }

// Tuple builds a finite ordered sequence of child descriptors. Arity zero
// is the unit value and occupies no bytes on the wire.
func Tuple(elems ...*Type) *Type {
	if len(elems) == 0 {
		return unitType
	}
	fields := make([]Field, len(elems))
	for i, e := range elems {
		fields[i] = Field{Type: e}
	}
	return &Type{Kind: KindTuple, Fields: fields}
}

// Unit is the arity-0 tuple.
func Unit() *Type { return unitType }

// FixedArray builds a descriptor for exactly n elements of elem. The size
// is part of the descriptor; no length prefix is emitted.
func FixedArray(elem *Type, n int) *Type {
	return &Type{Kind: KindArray, Elem: elem, Len: n}
}

// Collection builds a variable-length sequence of elem. The element count
// is part of the value and is emitted as a u64 length prefix.
func Collection(elem *Type) *Type {
	return &Type{Kind: KindCollection, Elem: elem}
}

// Vec is an alias for Collection.
func Vec(elem *Type) *Type { return Collection(elem) }

// Set is an alias for Collection.
func Set(elem *Type) *Type { return Collection(elem) }

// Map is a collection of key/value pairs.
func Map(key, value *Type) *Type {
	return Collection(Tuple(key, value))
}

// Bytes is a collection of u8. Values decode as []byte.
func Bytes() *Type {
	return Collection(U8())
}

// Struct builds an ordered sequence of named fields. Field names must be
// unique; encode and decode visit fields in declaration order and emit no
// names or framing on the wire.
func Struct(fields ...Field) *Type {
	return &Type{Kind: KindStruct, Fields: fields}
}

// Enum builds a tagged union from declared variants. Discriminants must be
// pairwise unique; they need not be contiguous. A nil payload marks a
// dataless variant that emits nothing after its discriminant.
func Enum(cases ...Case) *Type {
	return &Type{Kind: KindEnum, Cases: cases}
}

// Option represents "absent or exactly one inner". One tag byte on the
// wire: 0 absent, 1 present followed by the inner encoding.
func Option(inner *Type) *Type {
	return &Type{Kind: KindOption, Elem: inner}
}

// Result is the conventional Ok/Err enum: Ok=0 carrying ok, Err=1
// carrying errT.
func Result(ok, errT *Type) *Type {
	return Enum(
		Case{Name: "Ok", Discriminant: 0, Payload: Tuple(ok)},
		Case{Name: "Err", Discriminant: 1, Payload: Tuple(errT)},
	)
}

// Custom wraps caller-supplied encode/decode closures for a user-defined
// wire format. The engine treats the closures as black boxes that must
// consume and produce bytes respecting the active configuration.
func Custom(name string, encode EncodeFunc, decode DecodeFunc) *Type {
	return &Type{
		Kind:         KindCustom,
		CustomName:   name,
		CustomEncode: encode,
		CustomDecode: decode,
	}
}
