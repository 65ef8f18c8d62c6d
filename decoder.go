package bincode

import (
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/wippyai/bincode/errors"
)

// Decoder reconstructs values from byte buffers under one configuration.
// It holds no state across calls and is safe for concurrent use.
type Decoder struct {
	cfg Config
}

// NewDecoder returns a decoder using the standard configuration.
func NewDecoder() *Decoder {
	return &Decoder{cfg: Standard()}
}

// NewDecoderWithConfig returns a decoder using cfg.
func NewDecoderWithConfig(cfg Config) *Decoder {
	return &Decoder{cfg: cfg}
}

// Decode reads a value shaped by desc from buf starting at offset. It
// returns the reconstructed value and the offset past the last byte read.
// The input is never read beyond the returned offset.
func (d *Decoder) Decode(desc *Type, buf []byte, offset int) (any, int, error) {
	if desc == nil {
		return nil, offset, errors.New(errors.PhaseDecode, errors.KindInvalidType).
			Detail("nil descriptor").
			Build()
	}
	cur := NewCursor(buf, d.cfg)
	return d.decodeValue(desc, cur, offset, nil)
}

func (d *Decoder) decodeValue(t *Type, cur *Cursor, offset int, path []string) (any, int, error) {
	switch t.Kind {
	case KindBool:
		b, offset, err := cur.ReadU8(offset)
		if err != nil {
			return nil, offset, err
		}
		switch b {
		case 0:
			return false, offset, nil
		case 1:
			return true, offset, nil
		default:
			return nil, offset, errors.InvalidBool(errors.PhaseDecode, path, b)
		}

	case KindU8:
		b, offset, err := cur.ReadU8(offset)
		return b, offset, err

	case KindI8:
		b, offset, err := cur.ReadU8(offset)
		return int8(b), offset, err

	case KindU16:
		v, offset, err := d.readUnsigned(t, cur, offset, 2, path)
		if err != nil {
			return nil, offset, err
		}
		return uint16(v), offset, nil

	case KindI16:
		z, offset, err := d.readUnsigned(t, cur, offset, 2, path)
		if err != nil {
			return nil, offset, err
		}
		if d.cfg.Ints == IntVariant {
			return unzigzag16(uint16(z)), offset, nil
		}
		return int16(uint16(z)), offset, nil

	case KindU32:
		v, offset, err := d.readUnsigned(t, cur, offset, 4, path)
		if err != nil {
			return nil, offset, err
		}
		return uint32(v), offset, nil

	case KindI32:
		z, offset, err := d.readUnsigned(t, cur, offset, 4, path)
		if err != nil {
			return nil, offset, err
		}
		if d.cfg.Ints == IntVariant {
			return unzigzag32(uint32(z)), offset, nil
		}
		return int32(uint32(z)), offset, nil

	case KindU64:
		v, offset, err := d.readUnsigned(t, cur, offset, 8, path)
		if err != nil {
			return nil, offset, err
		}
		return v, offset, nil

	case KindI64:
		z, offset, err := d.readUnsigned(t, cur, offset, 8, path)
		if err != nil {
			return nil, offset, err
		}
		if d.cfg.Ints == IntVariant {
			return unzigzag64(z), offset, nil
		}
		return int64(z), offset, nil

	case KindU128:
		if d.cfg.Ints == IntVariant {
			v, offset, err := cur.ReadUvarintBig(offset)
			return v, offset, err
		}
		v, offset, err := cur.ReadU128(offset)
		return v, offset, err

	case KindI128:
		if d.cfg.Ints == IntVariant {
			z, offset, err := cur.ReadUvarintBig(offset)
			if err != nil {
				return nil, offset, err
			}
			return unzigzag128(z), offset, nil
		}
		v, offset, err := cur.ReadU128(offset)
		if err != nil {
			return nil, offset, err
		}
		return fromTwosComplement128(v), offset, nil

	case KindF32:
		bits, offset, err := cur.ReadUint(offset, 4)
		if err != nil {
			return nil, offset, err
		}
		return math.Float32frombits(uint32(bits)), offset, nil

	case KindF64:
		bits, offset, err := cur.ReadUint(offset, 8)
		if err != nil {
			return nil, offset, err
		}
		return math.Float64frombits(bits), offset, nil

	case KindF16, KindF128:
		return nil, offset, errors.Unimplemented(errors.PhaseDecode, t.Kind.String()+" is reserved")

	case KindString:
		return d.decodeString(cur, offset, path)

	case KindTuple:
		result := make([]any, 0, len(t.Fields))
		var v any
		var err error
		for i, f := range t.Fields {
			v, offset, err = d.decodeValue(f.Type, cur, offset, append(path, "["+strconv.Itoa(i)+"]"))
			if err != nil {
				return nil, offset, err
			}
			result = append(result, v)
		}
		return result, offset, nil

	case KindArray:
		result := make([]any, 0, t.Len)
		var v any
		var err error
		for i := 0; i < t.Len; i++ {
			v, offset, err = d.decodeValue(t.Elem, cur, offset, append(path, "["+strconv.Itoa(i)+"]"))
			if err != nil {
				return nil, offset, err
			}
			result = append(result, v)
		}
		return result, offset, nil

	case KindCollection:
		return d.decodeCollection(t, cur, offset, path)

	case KindStruct:
		result := make(map[string]any, len(t.Fields))
		var v any
		var err error
		for _, f := range t.Fields {
			v, offset, err = d.decodeValue(f.Type, cur, offset, append(path, f.Name))
			if err != nil {
				return nil, offset, err
			}
			result[f.Name] = v
		}
		return result, offset, nil

	case KindEnum:
		return d.decodeEnum(t, cur, offset, path)

	case KindOption:
		tag, offset, err := cur.ReadU8(offset)
		if err != nil {
			return nil, offset, err
		}
		switch tag {
		case 0:
			return None, offset, nil
		case 1:
			return d.decodeValue(t.Elem, cur, offset, path)
		default:
			return nil, offset, errors.InvalidOptionTag(errors.PhaseDecode, path, tag)
		}

	case KindCustom:
		if t.CustomDecode == nil {
			return nil, offset, errors.New(errors.PhaseDecode, errors.KindInvalidType).
				Path(path...).
				Detail("custom descriptor %q has no decode closure", t.CustomName).
				Build()
		}
		return t.CustomDecode(cur.buf, offset, d.cfg)

	default:
		return nil, offset, errors.New(errors.PhaseDecode, errors.KindInvalidType).
			Path(path...).
			Detail("unknown descriptor kind %d", t.Kind).
			Build()
	}
}

// readUnsigned reads one multi-byte unsigned quantity: a varint in variant
// mode (range-checked against the lane width), raw width bytes in fixed
// mode.
func (d *Decoder) readUnsigned(t *Type, cur *Cursor, offset, width int, path []string) (uint64, int, error) {
	if d.cfg.Ints == IntFixed {
		return cur.ReadUint(offset, width)
	}
	v, offset, err := cur.ReadUvarint(offset)
	if err != nil {
		return 0, offset, err
	}
	var max uint64
	switch width {
	case 2:
		max = math.MaxUint16
	case 4:
		max = math.MaxUint32
	default:
		max = math.MaxUint64
	}
	if v > max {
		return 0, offset, errors.New(errors.PhaseDecode, errors.KindInvalidType).
			Path(path...).
			WireType(t.Kind.String()).
			Detail("varint value %d exceeds %d-bit range", v, width*8).
			Build()
	}
	return v, offset, nil
}

// readLength reads a u64 quantity under the active length encoding and
// bounds it to the addressable range.
func (d *Decoder) readLength(cur *Cursor, offset int, path []string) (int, int, error) {
	var n uint64
	var err error
	if d.cfg.Ints == IntVariant {
		n, offset, err = cur.ReadUvarint(offset)
	} else {
		n, offset, err = cur.ReadUint(offset, 8)
	}
	if err != nil {
		return 0, offset, err
	}
	if n > uint64(math.MaxInt) {
		return 0, offset, errors.InvalidLength(errors.PhaseDecode, path,
			"length "+strconv.FormatUint(n, 10)+" exceeds addressable range")
	}
	return int(n), offset, nil
}

func (d *Decoder) decodeString(cur *Cursor, offset int, path []string) (any, int, error) {
	n, offset, err := d.readLength(cur, offset, path)
	if err != nil {
		return nil, offset, err
	}
	raw, offset, err := cur.ReadBytes(offset, n)
	if err != nil {
		return nil, offset, err
	}
	if !utf8.Valid(raw) {
		return nil, offset, errors.New(errors.PhaseDecode, errors.KindInvalidType).
			Path(path...).
			WireType("string").
			Detail("invalid UTF-8 sequence").
			Build()
	}
	return string(raw), offset, nil
}

func (d *Decoder) decodeCollection(t *Type, cur *Cursor, offset int, path []string) (any, int, error) {
	n, offset, err := d.readLength(cur, offset, path)
	if err != nil {
		return nil, offset, err
	}

	// Byte collections read in one bounds-checked chunk and decode as
	// []byte, matching the Bytes alias.
	if t.Elem.Kind == KindU8 {
		raw, offset, err := cur.ReadBytes(offset, n)
		if err != nil {
			return nil, offset, err
		}
		out := make([]byte, n)
		copy(out, raw)
		return out, offset, nil
	}

	// A hostile length prefix can claim 2^63 elements; cap the
	// pre-allocation by the bytes actually remaining. The cap changes
	// resource behavior only, never wire semantics.
	capacity := n
	if remaining := cur.Remaining(offset); capacity > remaining {
		capacity = remaining
	}
	result := make([]any, 0, capacity)
	var v any
	for i := 0; i < n; i++ {
		v, offset, err = d.decodeValue(t.Elem, cur, offset, append(path, "["+strconv.Itoa(i)+"]"))
		if err != nil {
			return nil, offset, err
		}
		result = append(result, v)
	}
	return result, offset, nil
}

func (d *Decoder) decodeEnum(t *Type, cur *Cursor, offset int, path []string) (any, int, error) {
	var disc uint64
	var err error
	if d.cfg.Ints == IntVariant {
		disc, offset, err = cur.ReadUvarint(offset)
		if err != nil {
			return nil, offset, err
		}
		if disc > math.MaxUint32 {
			return nil, offset, errors.New(errors.PhaseDecode, errors.KindInvalidVariant).
				Path(path...).
				WireType(t.String()).
				Detail("discriminant %d exceeds u32 range", disc).
				Build()
		}
	} else {
		disc, offset, err = cur.ReadUint(offset, 4)
		if err != nil {
			return nil, offset, err
		}
	}

	idx, ok := t.CaseByDiscriminant(uint32(disc))
	if !ok {
		return nil, offset, errors.New(errors.PhaseDecode, errors.KindInvalidType).
			Path(path...).
			WireType(t.String()).
			Detail("enum declares duplicate discriminants").
			Build()
	}
	if idx < 0 {
		return nil, offset, errors.InvalidDiscriminant(errors.PhaseDecode, path, uint32(disc), t.String())
	}

	c := &t.Cases[idx]
	if c.Payload == nil {
		return Variant{Name: c.Name}, offset, nil
	}
	payload, offset, err := d.decodeValue(c.Payload, cur, offset, append(path, c.Name))
	if err != nil {
		return nil, offset, err
	}
	return Variant{Name: c.Name, Payload: payload}, offset, nil
}
