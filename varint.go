package bincode

import (
	"math"
	"math/big"

	"github.com/wippyai/bincode/errors"
)

// Bincode's variable-length unsigned integer: a one-byte discriminator
// followed by 0, 2, 4, 8, or 16 payload bytes in the configured byte order.
//
//	u <= 250                  [u]
//	u <= 0xFFFF               [251] [u16]
//	u <= 0xFFFF_FFFF          [252] [u32]
//	u <= 0xFFFF..FFFF (u64)   [253] [u64]
//	otherwise                 [254] [u128]
//
// Discriminator 255 is reserved and rejected on read.
const (
	varintSingleMax  = 250
	varintU16Marker  = 251
	varintU32Marker  = 252
	varintU64Marker  = 253
	varintU128Marker = 254
)

// WriteUvarint writes u in the smallest form that holds it.
func (c *Cursor) WriteUvarint(offset int, u uint64) (int, error) {
	switch {
	case u <= varintSingleMax:
		return c.WriteU8(offset, byte(u))
	case u <= math.MaxUint16:
		offset, err := c.WriteU8(offset, varintU16Marker)
		if err != nil {
			return offset, err
		}
		return c.WriteUint(offset, u, 2)
	case u <= math.MaxUint32:
		offset, err := c.WriteU8(offset, varintU32Marker)
		if err != nil {
			return offset, err
		}
		return c.WriteUint(offset, u, 4)
	default:
		offset, err := c.WriteU8(offset, varintU64Marker)
		if err != nil {
			return offset, err
		}
		return c.WriteUint(offset, u, 8)
	}
}

// WriteUvarintBig writes u, spilling into the 16-byte form only when the
// value exceeds the u64 range. u must be in [0, 2^128).
func (c *Cursor) WriteUvarintBig(offset int, u *big.Int) (int, error) {
	if u.Sign() < 0 || u.Cmp(maxU128) > 0 {
		return offset, errors.BigintOutOfRange(errors.PhaseEncode, nil, "varint operand does not fit in 128 bits")
	}
	if u.IsUint64() {
		return c.WriteUvarint(offset, u.Uint64())
	}
	offset, err := c.WriteU8(offset, varintU128Marker)
	if err != nil {
		return offset, err
	}
	return c.WriteU128(offset, u)
}

// ReadUvarint reads a varint that must fit in a u64. A 16-byte payload
// above the u64 range and the reserved discriminator 255 both fail with
// BigintOutOfRange.
func (c *Cursor) ReadUvarint(offset int) (uint64, int, error) {
	marker, offset, err := c.ReadU8(offset)
	if err != nil {
		return 0, offset, err
	}
	switch {
	case marker <= varintSingleMax:
		return uint64(marker), offset, nil
	case marker == varintU16Marker:
		return c.ReadUint(offset, 2)
	case marker == varintU32Marker:
		return c.ReadUint(offset, 4)
	case marker == varintU64Marker:
		return c.ReadUint(offset, 8)
	case marker == varintU128Marker:
		v, offset, err := c.ReadU128(offset)
		if err != nil {
			return 0, offset, err
		}
		if !v.IsUint64() {
			return 0, offset, errors.BigintOutOfRange(errors.PhaseDecode, nil, "128-bit varint payload exceeds u64 range")
		}
		return v.Uint64(), offset, nil
	default:
		return 0, offset, errors.BigintOutOfRange(errors.PhaseDecode, nil, "unknown varint discriminator 255")
	}
}

// ReadUvarintBig reads a varint of any width up to 128 bits.
func (c *Cursor) ReadUvarintBig(offset int) (*big.Int, int, error) {
	marker, off, err := c.ReadU8(offset)
	if err != nil {
		return nil, off, err
	}
	if marker == varintU128Marker {
		return c.ReadU128(off)
	}
	if marker == 255 {
		return nil, off, errors.BigintOutOfRange(errors.PhaseDecode, nil, "unknown varint discriminator 255")
	}
	v, off, err := c.ReadUvarint(offset)
	if err != nil {
		return nil, off, err
	}
	return new(big.Int).SetUint64(v), off, nil
}

// Zigzag maps signed integers onto unsigned so small magnitudes encode
// compactly: zig(x) = (x << 1) XOR (x >> (W-1)). Go's wrapping shift
// semantics give the most-negative value of each width its required
// all-ones image without a separate branch.

func zigzag16(x int16) uint16 { return uint16(x<<1) ^ uint16(x>>15) }
func zigzag32(x int32) uint32 { return uint32(x<<1) ^ uint32(x>>31) }
func zigzag64(x int64) uint64 { return uint64(x<<1) ^ uint64(x>>63) }

func unzigzag16(z uint16) int16 { return int16(z>>1) ^ -int16(z&1) }
func unzigzag32(z uint32) int32 { return int32(z>>1) ^ -int32(z&1) }
func unzigzag64(z uint64) int64 { return int64(z>>1) ^ -int64(z&1) }

// zigzag128 computes (x << 1) XOR (x >> 127) on big integers. x must be in
// [-2^127, 2^127); the result is in [0, 2^128).
func zigzag128(x *big.Int) *big.Int {
	shifted := new(big.Int).Lsh(x, 1)
	sign := new(big.Int).Rsh(x, 127)
	return shifted.Xor(shifted, sign)
}

// unzigzag128 inverts zigzag128: (z >> 1) XOR -(z & 1).
func unzigzag128(z *big.Int) *big.Int {
	half := new(big.Int).Rsh(z, 1)
	bit := new(big.Int).And(z, big.NewInt(1))
	bit.Neg(bit)
	return half.Xor(half, bit)
}
