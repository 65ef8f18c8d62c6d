// Package corpus defines the conformance descriptor/value set shared by the
// package tests and the fixture generator. The set mirrors the reference
// cross-language integration corpus: a flat person record, a nested
// composite record, a multi-shape message union, and one entry per
// primitive and container edge.
package corpus

import (
	"math"
	"math/big"

	bincode "github.com/wippyai/bincode"
)

// Entry is one named conformance case.
type Entry struct {
	Value any
	Desc  *bincode.Type
	Name  string
}

// Person is the flat record shape.
func Person() *bincode.Type {
	return bincode.Struct(
		bincode.Field{Name: "name", Type: bincode.String()},
		bincode.Field{Name: "age", Type: bincode.U8()},
		bincode.Field{Name: "is_active", Type: bincode.Bool()},
	)
}

// Complex is the nested composite shape.
func Complex() *bincode.Type {
	return bincode.Struct(
		bincode.Field{Name: "id", Type: bincode.U32()},
		bincode.Field{Name: "score", Type: bincode.F64()},
		bincode.Field{Name: "tags", Type: bincode.Vec(bincode.String())},
		bincode.Field{Name: "metadata", Type: bincode.Map(bincode.String(), bincode.String())},
	)
}

// Message is the multi-shape union: tuple payloads and a record payload.
func Message() *bincode.Type {
	return bincode.Enum(
		bincode.Case{Name: "Text", Discriminant: 0, Payload: bincode.Tuple(bincode.String())},
		bincode.Case{Name: "Number", Discriminant: 1, Payload: bincode.Tuple(bincode.U32())},
		bincode.Case{Name: "Bool", Discriminant: 2, Payload: bincode.Tuple(bincode.Bool())},
		bincode.Case{Name: "Data", Discriminant: 3, Payload: bincode.Struct(
			bincode.Field{Name: "content", Type: bincode.String()},
			bincode.Field{Name: "size", Type: bincode.U32()},
		)},
	)
}

// Entries returns the full conformance set in a stable order.
func Entries() []Entry {
	two64 := new(big.Int).Lsh(big.NewInt(1), 64)
	i128Min := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))

	return []Entry{
		{Name: "bool_true", Desc: bincode.Bool(), Value: true},
		{Name: "u8_max", Desc: bincode.U8(), Value: uint8(math.MaxUint8)},
		{Name: "u16_max", Desc: bincode.U16(), Value: uint16(math.MaxUint16)},
		{Name: "u32_max", Desc: bincode.U32(), Value: uint32(math.MaxUint32)},
		{Name: "u32_65536", Desc: bincode.U32(), Value: uint32(65536)},
		{Name: "u64_max", Desc: bincode.U64(), Value: uint64(math.MaxUint64)},
		{Name: "u128_two64", Desc: bincode.U128(), Value: two64},
		{Name: "i8_min", Desc: bincode.I8(), Value: int8(math.MinInt8)},
		{Name: "i16_min", Desc: bincode.I16(), Value: int16(math.MinInt16)},
		{Name: "i32_min", Desc: bincode.I32(), Value: int32(math.MinInt32)},
		{Name: "i64_min", Desc: bincode.I64(), Value: int64(math.MinInt64)},
		{Name: "i128_min", Desc: bincode.I128(), Value: i128Min},
		{Name: "f32_one", Desc: bincode.F32(), Value: float32(1.0)},
		{Name: "f64_one", Desc: bincode.F64(), Value: 1.0},
		{Name: "string_hello", Desc: bincode.String(), Value: "Hello, World!"},
		{Name: "string_empty", Desc: bincode.String(), Value: ""},
		{Name: "vec_u32", Desc: bincode.Vec(bincode.U32()),
			Value: []any{uint32(1), uint32(2), uint32(3), uint32(4), uint32(5)}},
		{Name: "vec_string", Desc: bincode.Vec(bincode.String()),
			Value: []any{"hello", "world"}},
		{Name: "map_str_str", Desc: bincode.Map(bincode.String(), bincode.String()),
			Value: []any{[]any{"k1", "v1"}, []any{"k2", "v2"}}},
		{Name: "tuple_mixed", Desc: bincode.Tuple(bincode.String(), bincode.U32(), bincode.Bool()),
			Value: []any{"test", uint32(42), true}},
		{Name: "array_u8", Desc: bincode.FixedArray(bincode.U8(), 5),
			Value: []any{uint8(1), uint8(2), uint8(3), uint8(4), uint8(5)}},
		{Name: "option_some", Desc: bincode.Option(bincode.String()), Value: "present"},
		{Name: "option_none", Desc: bincode.Option(bincode.String()), Value: bincode.None},
		{Name: "person", Desc: Person(),
			Value: map[string]any{"name": "Alice", "age": uint8(30), "is_active": true}},
		{Name: "complex", Desc: Complex(),
			Value: map[string]any{
				"id":       uint32(7),
				"score":    2.5,
				"tags":     []any{"a", "b"},
				"metadata": []any{[]any{"k", "v"}},
			}},
		{Name: "message_text", Desc: Message(),
			Value: bincode.Variant{Name: "Text", Payload: []any{"Hello, bincode!"}}},
		{Name: "message_number", Desc: Message(),
			Value: bincode.Variant{Name: "Number", Payload: []any{uint32(42)}}},
		{Name: "message_bool", Desc: Message(),
			Value: bincode.Variant{Name: "Bool", Payload: []any{true}}},
		{Name: "message_data", Desc: Message(),
			Value: bincode.Variant{Name: "Data", Payload: map[string]any{
				"content": "payload", "size": uint32(7),
			}}},
	}
}

// ByName returns the entry named name, or nil.
func ByName(name string) *Entry {
	for _, e := range Entries() {
		if e.Name == name {
			e := e
			return &e
		}
	}
	return nil
}

// Configs returns the named configurations fixtures are generated under.
func Configs() map[string]bincode.Config {
	return map[string]bincode.Config{
		"standard":  bincode.Standard(),
		"fixed":     bincode.Legacy(),
		"big":       bincode.WithEndian(bincode.Standard(), bincode.BigEndian),
		"big-fixed": bincode.WithEndian(bincode.Legacy(), bincode.BigEndian),
	}
}
