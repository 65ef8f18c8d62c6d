package bincode

import (
	"encoding/binary"
	"math/big"

	"github.com/wippyai/bincode/errors"
)

// Cursor provides bounded reads and writes over a caller-owned buffer.
// Every accessor takes the current offset and returns the offset past the
// bytes it touched; an access that would cross the buffer end or the
// configured limit fails with OverflowLimit and touches nothing.
//
// A Cursor is cheap to construct and local to one encode or decode call.
type Cursor struct {
	buf   []byte
	cfg   Config
	bound int
}

// NewCursor wraps buf under cfg. The effective bound is the smaller of the
// buffer length and cfg.Limit.
func NewCursor(buf []byte, cfg Config) *Cursor {
	bound := len(buf)
	if cfg.Limit != NoLimit && cfg.Limit < uint64(bound) {
		bound = int(cfg.Limit)
	}
	return &Cursor{buf: buf, cfg: cfg, bound: bound}
}

// Config returns the active configuration.
func (c *Cursor) Config() Config { return c.cfg }

// Remaining returns the byte count between offset and the effective bound.
func (c *Cursor) Remaining(offset int) int {
	if offset >= c.bound {
		return 0
	}
	return c.bound - offset
}

func (c *Cursor) require(phase errors.Phase, offset, n int) error {
	if offset < 0 || n < 0 || offset+n > c.bound || offset+n < offset {
		bound := uint64(c.bound)
		return errors.OverflowLimit(phase, nil, offset, n, bound)
	}
	return nil
}

func (c *Cursor) order() binary.ByteOrder {
	if c.cfg.Endian == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// WriteU8 writes one raw byte.
func (c *Cursor) WriteU8(offset int, v byte) (int, error) {
	if err := c.require(errors.PhaseEncode, offset, 1); err != nil {
		return offset, err
	}
	c.buf[offset] = v
	return offset + 1, nil
}

// ReadU8 reads one raw byte.
func (c *Cursor) ReadU8(offset int) (byte, int, error) {
	if err := c.require(errors.PhaseDecode, offset, 1); err != nil {
		return 0, offset, err
	}
	return c.buf[offset], offset + 1, nil
}

// WriteUint writes v in the configured byte order using width bytes
// (1, 2, 4, or 8).
func (c *Cursor) WriteUint(offset int, v uint64, width int) (int, error) {
	if err := c.require(errors.PhaseEncode, offset, width); err != nil {
		return offset, err
	}
	switch width {
	case 1:
		c.buf[offset] = byte(v)
	case 2:
		c.order().PutUint16(c.buf[offset:], uint16(v))
	case 4:
		c.order().PutUint32(c.buf[offset:], uint32(v))
	case 8:
		c.order().PutUint64(c.buf[offset:], v)
	default:
		return offset, errors.New(errors.PhaseEncode, errors.KindInvalidType).
			Detail("unsupported integer width %d", width).
			Build()
	}
	return offset + width, nil
}

// ReadUint reads a width-byte unsigned integer in the configured byte order.
func (c *Cursor) ReadUint(offset, width int) (uint64, int, error) {
	if err := c.require(errors.PhaseDecode, offset, width); err != nil {
		return 0, offset, err
	}
	var v uint64
	switch width {
	case 1:
		v = uint64(c.buf[offset])
	case 2:
		v = uint64(c.order().Uint16(c.buf[offset:]))
	case 4:
		v = uint64(c.order().Uint32(c.buf[offset:]))
	case 8:
		v = c.order().Uint64(c.buf[offset:])
	default:
		return 0, offset, errors.New(errors.PhaseDecode, errors.KindInvalidType).
			Detail("unsupported integer width %d", width).
			Build()
	}
	return v, offset + width, nil
}

// WriteBytes copies p into the buffer.
func (c *Cursor) WriteBytes(offset int, p []byte) (int, error) {
	if err := c.require(errors.PhaseEncode, offset, len(p)); err != nil {
		return offset, err
	}
	copy(c.buf[offset:], p)
	return offset + len(p), nil
}

// ReadBytes returns a view of n bytes. The view aliases the caller's
// buffer; copy before retaining.
func (c *Cursor) ReadBytes(offset, n int) ([]byte, int, error) {
	if err := c.require(errors.PhaseDecode, offset, n); err != nil {
		return nil, offset, err
	}
	return c.buf[offset : offset+n], offset + n, nil
}

var (
	mask64  = new(big.Int).SetUint64(^uint64(0))
	two127  = new(big.Int).Lsh(big.NewInt(1), 127)
	two128  = new(big.Int).Lsh(big.NewInt(1), 128)
	maxU128 = new(big.Int).Sub(two128, big.NewInt(1))
	maxI128 = new(big.Int).Sub(two127, big.NewInt(1))
	minI128 = new(big.Int).Neg(two127)
)

// toTwosComplement128 maps a signed 128-bit value onto its unsigned wire
// image.
func toTwosComplement128(v *big.Int) *big.Int {
	if v.Sign() < 0 {
		return new(big.Int).Add(v, two128)
	}
	return v
}

// fromTwosComplement128 inverts toTwosComplement128.
func fromTwosComplement128(v *big.Int) *big.Int {
	if v.Cmp(two127) >= 0 {
		return new(big.Int).Sub(v, two128)
	}
	return v
}

// WriteU128 writes a 128-bit unsigned integer as two 64-bit halves: low
// then high under little-endian, high then low under big-endian. v must be
// in [0, 2^128).
func (c *Cursor) WriteU128(offset int, v *big.Int) (int, error) {
	if v.Sign() < 0 || v.Cmp(maxU128) > 0 {
		return offset, errors.BigintOutOfRange(errors.PhaseEncode, nil, "value does not fit in 128 bits")
	}
	if err := c.require(errors.PhaseEncode, offset, 16); err != nil {
		return offset, err
	}
	lo := new(big.Int).And(v, mask64).Uint64()
	hi := new(big.Int).Rsh(v, 64).Uint64()
	var err error
	if c.cfg.Endian == BigEndian {
		if offset, err = c.WriteUint(offset, hi, 8); err != nil {
			return offset, err
		}
		return c.WriteUint(offset, lo, 8)
	}
	if offset, err = c.WriteUint(offset, lo, 8); err != nil {
		return offset, err
	}
	return c.WriteUint(offset, hi, 8)
}

// ReadU128 reads a 128-bit unsigned integer, reassembling the two 64-bit
// halves via shift and mask.
func (c *Cursor) ReadU128(offset int) (*big.Int, int, error) {
	if err := c.require(errors.PhaseDecode, offset, 16); err != nil {
		return nil, offset, err
	}
	var lo, hi uint64
	var err error
	if c.cfg.Endian == BigEndian {
		if hi, offset, err = c.ReadUint(offset, 8); err != nil {
			return nil, offset, err
		}
		if lo, offset, err = c.ReadUint(offset, 8); err != nil {
			return nil, offset, err
		}
	} else {
		if lo, offset, err = c.ReadUint(offset, 8); err != nil {
			return nil, offset, err
		}
		if hi, offset, err = c.ReadUint(offset, 8); err != nil {
			return nil, offset, err
		}
	}
	v := new(big.Int).SetUint64(hi)
	v.Lsh(v, 64)
	v.Or(v, new(big.Int).SetUint64(lo))
	return v, offset, nil
}
