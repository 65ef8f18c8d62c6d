package bincode

import (
	"math"
	"math/big"
	"testing"

	stderrors "errors"

	"github.com/maxatome/go-testdeep/td"

	"github.com/wippyai/bincode/errors"
)

func TestDecode_VarintIntegers(t *testing.T) {
	tests := []struct {
		name  string
		desc  *Type
		input []byte
		want  any
	}{
		{"u32 250", U32(), []byte{250}, uint32(250)},
		{"u32 251", U32(), []byte{251, 251, 0}, uint32(251)},
		{"u32 65535", U32(), []byte{251, 255, 255}, uint32(65535)},
		{"u32 65536", U32(), []byte{252, 0, 0, 1, 0}, uint32(65536)},
		{"u64 2^32", U64(), []byte{253, 0, 0, 0, 0, 1, 0, 0, 0}, uint64(1) << 32},
		{"i32 -1", I32(), []byte{1}, int32(-1)},
		{"i32 min", I32(), []byte{252, 255, 255, 255, 255}, int32(math.MinInt32)},
		{"i16 min", I16(), []byte{251, 255, 255}, int16(math.MinInt16)},
		{"i64 min", I64(), []byte{253, 255, 255, 255, 255, 255, 255, 255, 255}, int64(math.MinInt64)},
		{"u8 raw", U8(), []byte{251}, uint8(251)},
		{"i8 raw", I8(), []byte{255}, int8(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, end, err := Decode(tt.desc, tt.input, 0, Standard())
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if end != len(tt.input) {
				t.Errorf("end = %d, want %d", end, len(tt.input))
			}
			td.Cmp(t, got, tt.want)
		})
	}
}

func TestDecode_RangeChecks(t *testing.T) {
	want := &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidType}

	// A u32-sized varint on a u16 lane is out of domain.
	input := []byte{252, 0, 0, 1, 0}
	if _, _, err := Decode(U16(), input, 0, Standard()); !stderrors.Is(err, want) {
		t.Errorf("u16 overflow: got %v, want invalid_type", err)
	}
	if _, _, err := Decode(I16(), input, 0, Standard()); !stderrors.Is(err, want) {
		t.Errorf("i16 overflow: got %v, want invalid_type", err)
	}
}

func TestDecode_Bool(t *testing.T) {
	if got, _, err := Decode(Bool(), []byte{0}, 0, Standard()); err != nil || got != false {
		t.Errorf("0 = (%v, %v)", got, err)
	}
	if got, _, err := Decode(Bool(), []byte{1}, 0, Standard()); err != nil || got != true {
		t.Errorf("1 = (%v, %v)", got, err)
	}
	want := &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidType}
	if _, _, err := Decode(Bool(), []byte{2}, 0, Standard()); !stderrors.Is(err, want) {
		t.Errorf("2: got %v, want invalid_type", err)
	}
}

func TestDecode_String(t *testing.T) {
	t.Run("hello world", func(t *testing.T) {
		input := append([]byte{13}, []byte("Hello, World!")...)
		got, end, err := Decode(String(), input, 0, Standard())
		if err != nil || end != 14 {
			t.Fatalf("(%v, %d, %v)", got, end, err)
		}
		td.Cmp(t, got, "Hello, World!")
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, _, err := Decode(String(), []byte{13, 'H', 'i'}, 0, Standard())
		if !stderrors.Is(err, overflowErr) {
			t.Errorf("got %v, want overflow_limit", err)
		}
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		want := &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidType}
		_, _, err := Decode(String(), []byte{2, 0xFF, 0xFE}, 0, Standard())
		if !stderrors.Is(err, want) {
			t.Errorf("got %v, want invalid_type", err)
		}
	})
}

func TestDecode_Struct(t *testing.T) {
	person := Struct(
		Field{Name: "name", Type: String()},
		Field{Name: "age", Type: U8()},
		Field{Name: "is_active", Type: Bool()},
	)
	input := []byte{5, 'A', 'l', 'i', 'c', 'e', 30, 1}
	got, end, err := Decode(person, input, 0, Standard())
	if err != nil || end != 8 {
		t.Fatalf("(%v, %d, %v)", got, end, err)
	}
	td.Cmp(t, got, map[string]any{
		"name":      "Alice",
		"age":       uint8(30),
		"is_active": true,
	})
}

func TestDecode_Enum(t *testing.T) {
	message := Enum(
		Case{Name: "Text", Discriminant: 0, Payload: Tuple(String())},
		Case{Name: "Number", Discriminant: 1, Payload: Tuple(U32())},
	)

	t.Run("number", func(t *testing.T) {
		got, end, err := Decode(message, []byte{1, 42}, 0, Standard())
		if err != nil || end != 2 {
			t.Fatalf("(%v, %d, %v)", got, end, err)
		}
		td.Cmp(t, got, Variant{Name: "Number", Payload: []any{uint32(42)}})
	})

	t.Run("unknown discriminant", func(t *testing.T) {
		want := &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidVariant}
		_, _, err := Decode(message, []byte{9}, 0, Standard())
		if !stderrors.Is(err, want) {
			t.Errorf("got %v, want invalid_variant", err)
		}
	})

	t.Run("non-contiguous discriminants", func(t *testing.T) {
		sparse := Enum(
			Case{Name: "A", Discriminant: 0},
			Case{Name: "B", Discriminant: 5},
		)
		got, _, err := Decode(sparse, []byte{5}, 0, Standard())
		if err != nil {
			t.Fatal(err)
		}
		td.Cmp(t, got, Variant{Name: "B"})

		want := &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidVariant}
		if _, _, err := Decode(sparse, []byte{3}, 0, Standard()); !stderrors.Is(err, want) {
			t.Errorf("wire discriminant 3: got %v, want invalid_variant", err)
		}
	})

	t.Run("duplicate discriminants are rejected", func(t *testing.T) {
		dup := Enum(
			Case{Name: "A", Discriminant: 1},
			Case{Name: "B", Discriminant: 1},
		)
		want := &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidType}
		if _, _, err := Decode(dup, []byte{1}, 0, Standard()); !stderrors.Is(err, want) {
			t.Errorf("got %v, want invalid_type", err)
		}
	})

	t.Run("struct payload", func(t *testing.T) {
		data := Enum(
			Case{Name: "Data", Discriminant: 3, Payload: Struct(
				Field{Name: "content", Type: String()},
				Field{Name: "size", Type: U32()},
			)},
		)
		input := []byte{3, 2, 'h', 'i', 5}
		got, end, err := Decode(data, input, 0, Standard())
		if err != nil || end != len(input) {
			t.Fatalf("(%v, %d, %v)", got, end, err)
		}
		td.Cmp(t, got, Variant{
			Name:    "Data",
			Payload: map[string]any{"content": "hi", "size": uint32(5)},
		})
	})
}

func TestDecode_Option(t *testing.T) {
	opt := Option(U32())

	t.Run("absent", func(t *testing.T) {
		got, end, err := Decode(opt, []byte{0}, 0, Standard())
		if err != nil || end != 1 {
			t.Fatalf("(%v, %d, %v)", got, end, err)
		}
		if !IsNone(got) {
			t.Errorf("got %v, want None", got)
		}
	})

	t.Run("present", func(t *testing.T) {
		got, end, err := Decode(opt, []byte{1, 7}, 0, Standard())
		if err != nil || end != 2 {
			t.Fatalf("(%v, %d, %v)", got, end, err)
		}
		td.Cmp(t, got, uint32(7))
	})

	t.Run("invalid tag", func(t *testing.T) {
		want := &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidOptionVariant}
		_, _, err := Decode(opt, []byte{2, 7}, 0, Standard())
		if !stderrors.Is(err, want) {
			t.Errorf("got %v, want invalid_option_variant", err)
		}
	})
}

func TestDecode_Collections(t *testing.T) {
	t.Run("bytes", func(t *testing.T) {
		got, end, err := Decode(Bytes(), []byte{3, 9, 8, 7}, 0, Standard())
		if err != nil || end != 4 {
			t.Fatalf("(%v, %d, %v)", got, end, err)
		}
		td.Cmp(t, got, []byte{9, 8, 7})
	})

	t.Run("u32 collection", func(t *testing.T) {
		got, end, err := Decode(Collection(U32()), []byte{2, 10, 20}, 0, Standard())
		if err != nil || end != 3 {
			t.Fatalf("(%v, %d, %v)", got, end, err)
		}
		td.Cmp(t, got, []any{uint32(10), uint32(20)})
	})

	t.Run("empty", func(t *testing.T) {
		got, end, err := Decode(Collection(U32()), []byte{0}, 0, Standard())
		if err != nil || end != 1 {
			t.Fatalf("(%v, %d, %v)", got, end, err)
		}
		td.Cmp(t, got, []any{})
	})

	t.Run("hostile length prefix", func(t *testing.T) {
		// Claims 2^60 elements with 2 bytes of input; must fail without
		// attempting a giant allocation.
		input := []byte{253, 0, 0, 0, 0, 0, 0, 0, 0x10, 1, 1}
		_, _, err := Decode(Collection(U32()), input, 0, Standard())
		if err == nil {
			t.Fatal("expected failure")
		}
	})

	t.Run("hostile byte length", func(t *testing.T) {
		input := []byte{253, 0, 0, 0, 0, 0, 0, 0, 0x10}
		_, _, err := Decode(Bytes(), input, 0, Standard())
		if !stderrors.Is(err, overflowErr) {
			t.Errorf("got %v, want overflow_limit", err)
		}
	})

	t.Run("map", func(t *testing.T) {
		m := Map(String(), U8())
		input := []byte{1, 2, 'h', 'i', 9}
		got, end, err := Decode(m, input, 0, Standard())
		if err != nil || end != len(input) {
			t.Fatalf("(%v, %d, %v)", got, end, err)
		}
		td.Cmp(t, got, []any{[]any{"hi", uint8(9)}})
	})
}

func TestDecode_U128(t *testing.T) {
	t.Run("wide", func(t *testing.T) {
		input := []byte{254, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0}
		got, end, err := Decode(U128(), input, 0, Standard())
		if err != nil || end != 17 {
			t.Fatalf("(%v, %d, %v)", got, end, err)
		}
		want := new(big.Int).Lsh(big.NewInt(1), 64)
		if got.(*big.Int).Cmp(want) != 0 {
			t.Errorf("got %s, want %s", got, want)
		}
	})

	t.Run("i128 min round trip", func(t *testing.T) {
		buf := make([]byte, 32)
		end, err := Encode(I128(), minI128, buf, 0, Standard())
		if err != nil {
			t.Fatal(err)
		}
		got, end2, err := Decode(I128(), buf, 0, Standard())
		if err != nil || end2 != end {
			t.Fatalf("(%v, %d, %v)", got, end2, err)
		}
		if got.(*big.Int).Cmp(minI128) != 0 {
			t.Errorf("got %s, want %s", got, minI128)
		}
	})

	t.Run("i128 fixed mode two's complement", func(t *testing.T) {
		buf := make([]byte, 16)
		end, err := Encode(I128(), big.NewInt(-1), buf, 0, Legacy())
		if err != nil || end != 16 {
			t.Fatal(err)
		}
		for i, b := range buf {
			if b != 255 {
				t.Fatalf("byte %d = %d, want 255", i, b)
			}
		}
		got, _, err := Decode(I128(), buf, 0, Legacy())
		if err != nil || got.(*big.Int).Cmp(big.NewInt(-1)) != 0 {
			t.Errorf("(%v, %v)", got, err)
		}
	})
}

func TestDecode_OffsetAccounting(t *testing.T) {
	// Two values back to back; the second decode starts where the first
	// ended.
	buf := make([]byte, 32)
	mid, err := Encode(String(), "ab", buf, 0, Standard())
	if err != nil {
		t.Fatal(err)
	}
	end, err := Encode(U32(), uint32(300), buf, mid, Standard())
	if err != nil {
		t.Fatal(err)
	}

	v1, off, err := Decode(String(), buf, 0, Standard())
	if err != nil || off != mid {
		t.Fatalf("first: (%v, %d, %v), want offset %d", v1, off, err, mid)
	}
	v2, off, err := Decode(U32(), buf, off, Standard())
	if err != nil || off != end {
		t.Fatalf("second: (%v, %d, %v), want offset %d", v2, off, err, end)
	}
	td.Cmp(t, v1, "ab")
	td.Cmp(t, v2, uint32(300))
}

func TestDecode_NoOverread(t *testing.T) {
	// Trailing garbage after a complete value is never touched.
	input := []byte{1, 0xFF, 0xFF, 0xFF}
	got, end, err := Decode(U32(), input, 0, Standard())
	if err != nil || end != 1 {
		t.Fatalf("(%v, %d, %v)", got, end, err)
	}
	td.Cmp(t, got, uint32(1))
}

func TestDecode_TruncatedInput(t *testing.T) {
	tests := []struct {
		name  string
		desc  *Type
		input []byte
	}{
		{"empty u32", U32(), nil},
		{"cut varint payload", U32(), []byte{252, 1, 2}},
		{"cut fixed array", FixedArray(U8(), 3), []byte{1, 2}},
		{"cut struct", Struct(Field{Name: "a", Type: U64()}), []byte{253, 0}},
		{"cut option payload", Option(U32()), []byte{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.desc, tt.input, 0, Standard())
			if !stderrors.Is(err, overflowErr) {
				t.Errorf("got %v, want overflow_limit", err)
			}
		})
	}
}
