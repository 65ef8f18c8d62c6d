// Package bincode implements the bincode wire format: a schema-driven,
// non-self-describing, deterministic binary serialization.
//
// A runtime descriptor names a shape; a value conforming to that shape is
// encoded into a caller-owned buffer, or reconstructed from one. Output is
// byte-identical to the reference bincode implementation under the same
// configuration.
//
// # Wire Format Overview
//
// Under the standard configuration (little-endian, variant integers):
//
//	Shape           Bytes
//	──────────────────────────────────────────────
//	bool, u8, i8    1 raw byte
//	u16..u64        varint
//	i16..i64        zigzag, then varint
//	u128, i128      varint (16-byte payload only above u64)
//	f32, f64        raw IEEE-754
//	string          varint byte length + UTF-8 bytes
//	tuple, struct   children in order, no framing
//	fixed array     exactly N elements, no prefix
//	collection      varint count + elements
//	enum            varint u32 discriminant + payload
//	option          1 tag byte (0/1) + inner if present
//
// The varint scheme is a one-byte discriminator followed by 0/2/4/8/16
// payload bytes: values up to 250 are the single byte itself; 251, 252,
// 253, 254 introduce u16, u32, u64, u128 payloads; 255 is reserved.
//
// Under the fixed configuration every varint quantity becomes its raw
// fixed width and signed integers skip zigzag.
//
// # Key Types
//
//	Type       - Runtime descriptor tree node
//	Encoder    - Writes values into caller-owned buffers
//	Decoder    - Reads values out of buffers
//	Config     - Endianness, integer mode, optional byte limit
//	Cursor     - Bounded endian-aware buffer access
//
// # Encoding Flow
//
//	desc := bincode.Struct(
//		bincode.Field{Name: "name", Type: bincode.String()},
//		bincode.Field{Name: "age", Type: bincode.U8()},
//	)
//	end, err := bincode.Encode(desc, map[string]any{
//		"name": "Alice",
//		"age":  uint8(30),
//	}, buf, 0, bincode.Standard())
//
// # Decoding Flow
//
//	value, end, err := bincode.Decode(desc, buf, 0, bincode.Standard())
//
// # Values
//
// Decoded values use a fixed vocabulary: Go integers of the lane's width,
// *big.Int for the 128-bit lanes, []any for tuples, arrays, and
// collections ([]byte for byte collections), map[string]any for structs,
// Variant for enums, and None for absent options.
//
// # Ownership
//
// Descriptors are immutable after construction and freely shareable.
// Buffers are caller-owned; the engine never resizes them and fails with
// OverflowLimit instead. Each call is independent: no global state, no
// internal concurrency.
//
// # Thread Safety
//
// Encoder, Decoder, and descriptors are safe for concurrent use. A Cursor
// is local to one call.
//
// # Error Handling
//
// Failures use the structured errors package with a closed kind set:
//
//	[decode] invalid_variant at message: wire type enum{A=0, B=5} - discriminant 3 matches no declared variant
//	[decode] overflow_limit: 4 bytes at offset 9 exceed bound 10
package bincode
