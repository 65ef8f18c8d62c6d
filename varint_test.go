package bincode

import (
	"bytes"
	"math"
	"math/big"
	"testing"

	stderrors "errors"

	"github.com/wippyai/bincode/errors"
)

func TestWriteUvarint_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		u    uint64
		want []byte
	}{
		{"zero", 0, []byte{0}},
		{"single max", 250, []byte{250}},
		{"first u16 form", 251, []byte{251, 251, 0}},
		{"u16 max", 65535, []byte{251, 255, 255}},
		{"first u32 form", 65536, []byte{252, 0, 0, 1, 0}},
		{"u32 max", math.MaxUint32, []byte{252, 255, 255, 255, 255}},
		{"first u64 form", math.MaxUint32 + 1, []byte{253, 0, 0, 0, 0, 1, 0, 0, 0}},
		{"u64 max", math.MaxUint64, []byte{253, 255, 255, 255, 255, 255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 32)
			cur := NewCursor(buf, Standard())
			end, err := cur.WriteUvarint(0, tt.u)
			if err != nil {
				t.Fatalf("WriteUvarint(%d): %v", tt.u, err)
			}
			if !bytes.Equal(buf[:end], tt.want) {
				t.Errorf("WriteUvarint(%d) = %x, want %x", tt.u, buf[:end], tt.want)
			}

			got, off, err := cur.ReadUvarint(0)
			if err != nil {
				t.Fatalf("ReadUvarint: %v", err)
			}
			if got != tt.u || off != end {
				t.Errorf("ReadUvarint = (%d, %d), want (%d, %d)", got, off, tt.u, end)
			}
		})
	}
}

func TestWriteUvarintBig_WideForm(t *testing.T) {
	two64 := new(big.Int).Lsh(big.NewInt(1), 64)

	buf := make([]byte, 32)
	cur := NewCursor(buf, Standard())
	end, err := cur.WriteUvarintBig(0, two64)
	if err != nil {
		t.Fatalf("WriteUvarintBig: %v", err)
	}
	want := []byte{254, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(buf[:end], want) {
		t.Errorf("WriteUvarintBig(2^64) = %x, want %x", buf[:end], want)
	}

	got, off, err := cur.ReadUvarintBig(0)
	if err != nil {
		t.Fatalf("ReadUvarintBig: %v", err)
	}
	if got.Cmp(two64) != 0 || off != end {
		t.Errorf("ReadUvarintBig = (%s, %d), want (%s, %d)", got, off, two64, end)
	}
}

func TestWriteUvarintBig_SmallStaysSmall(t *testing.T) {
	// 2^64-1 still fits the u64 form; only 2^64 spills into 16 bytes.
	buf := make([]byte, 32)
	cur := NewCursor(buf, Standard())
	end, err := cur.WriteUvarintBig(0, new(big.Int).SetUint64(math.MaxUint64))
	if err != nil {
		t.Fatalf("WriteUvarintBig: %v", err)
	}
	if end != 9 || buf[0] != 253 {
		t.Errorf("2^64-1 should use the u64 form, got %x", buf[:end])
	}
}

func TestReadUvarint_ReservedDiscriminator(t *testing.T) {
	cur := NewCursor([]byte{255}, Standard())
	_, _, err := cur.ReadUvarint(0)
	wantKind := &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindBigintOutOfRange}
	if !stderrors.Is(err, wantKind) {
		t.Errorf("discriminator 255: got %v, want bigint_out_of_range", err)
	}

	cur = NewCursor([]byte{255}, Standard())
	_, _, err = cur.ReadUvarintBig(0)
	if !stderrors.Is(err, wantKind) {
		t.Errorf("discriminator 255 (big): got %v, want bigint_out_of_range", err)
	}
}

func TestReadUvarint_WidePayloadOverU64(t *testing.T) {
	// [254] + 2^64 does not fit a u64 read.
	buf := []byte{254, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0}
	cur := NewCursor(buf, Standard())
	_, _, err := cur.ReadUvarint(0)
	wantKind := &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindBigintOutOfRange}
	if !stderrors.Is(err, wantKind) {
		t.Errorf("got %v, want bigint_out_of_range", err)
	}
}

func TestZigzag(t *testing.T) {
	t.Run("16", func(t *testing.T) {
		tests := []struct {
			x int16
			z uint16
		}{
			{0, 0},
			{-1, 1},
			{1, 2},
			{-2, 3},
			{math.MaxInt16, math.MaxUint16 - 1},
			{math.MinInt16, math.MaxUint16},
		}
		for _, tt := range tests {
			if got := zigzag16(tt.x); got != tt.z {
				t.Errorf("zigzag16(%d) = %d, want %d", tt.x, got, tt.z)
			}
			if got := unzigzag16(tt.z); got != tt.x {
				t.Errorf("unzigzag16(%d) = %d, want %d", tt.z, got, tt.x)
			}
		}
	})

	t.Run("32", func(t *testing.T) {
		tests := []struct {
			x int32
			z uint32
		}{
			{0, 0},
			{-1, 1},
			{1, 2},
			{math.MaxInt32, math.MaxUint32 - 1},
			{math.MinInt32, math.MaxUint32},
		}
		for _, tt := range tests {
			if got := zigzag32(tt.x); got != tt.z {
				t.Errorf("zigzag32(%d) = %d, want %d", tt.x, got, tt.z)
			}
			if got := unzigzag32(tt.z); got != tt.x {
				t.Errorf("unzigzag32(%d) = %d, want %d", tt.z, got, tt.x)
			}
		}
	})

	t.Run("64", func(t *testing.T) {
		tests := []struct {
			x int64
			z uint64
		}{
			{0, 0},
			{-1, 1},
			{1, 2},
			{math.MaxInt64, math.MaxUint64 - 1},
			{math.MinInt64, math.MaxUint64},
		}
		for _, tt := range tests {
			if got := zigzag64(tt.x); got != tt.z {
				t.Errorf("zigzag64(%d) = %d, want %d", tt.x, got, tt.z)
			}
			if got := unzigzag64(tt.z); got != tt.x {
				t.Errorf("unzigzag64(%d) = %d, want %d", tt.z, got, tt.x)
			}
		}
	})

	t.Run("128", func(t *testing.T) {
		one := big.NewInt(1)
		tests := []struct {
			x *big.Int
			z *big.Int
		}{
			{big.NewInt(0), big.NewInt(0)},
			{big.NewInt(-1), big.NewInt(1)},
			{big.NewInt(1), big.NewInt(2)},
			{maxI128, new(big.Int).Sub(maxU128, one)},
			{minI128, maxU128},
		}
		for _, tt := range tests {
			if got := zigzag128(tt.x); got.Cmp(tt.z) != 0 {
				t.Errorf("zigzag128(%s) = %s, want %s", tt.x, got, tt.z)
			}
			if got := unzigzag128(tt.z); got.Cmp(tt.x) != 0 {
				t.Errorf("unzigzag128(%s) = %s, want %s", tt.z, got, tt.x)
			}
		}
	})
}
