package bincode

import (
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/wippyai/bincode/errors"
)

// Encoder writes values into caller-owned buffers under one configuration.
// It holds no state across calls and is safe for concurrent use.
type Encoder struct {
	cfg Config
}

// NewEncoder returns an encoder using the standard configuration.
func NewEncoder() *Encoder {
	return &Encoder{cfg: Standard()}
}

// NewEncoderWithConfig returns an encoder using cfg.
func NewEncoderWithConfig(cfg Config) *Encoder {
	return &Encoder{cfg: cfg}
}

// Encode writes value, shaped by desc, into buf starting at offset. It
// returns the offset past the last byte written. The buffer is never
// resized; an overflow fails with OverflowLimit and leaves the already
// written prefix in place.
func (e *Encoder) Encode(desc *Type, value any, buf []byte, offset int) (int, error) {
	if desc == nil {
		return offset, errors.New(errors.PhaseEncode, errors.KindInvalidType).
			Detail("nil descriptor").
			Build()
	}
	cur := NewCursor(buf, e.cfg)
	return e.encodeValue(desc, value, cur, offset, nil)
}

func (e *Encoder) encodeValue(t *Type, value any, cur *Cursor, offset int, path []string) (int, error) {
	switch t.Kind {
	case KindBool:
		v, ok := value.(bool)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "bool")
		}
		var b byte
		if v {
			b = 1
		}
		return cur.WriteU8(offset, b)

	case KindU8:
		v, ok := coerceToUint8(value)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "u8")
		}
		return cur.WriteU8(offset, v)

	case KindI8:
		v, ok := coerceToInt8(value)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "i8")
		}
		return cur.WriteU8(offset, byte(v))

	case KindU16:
		v, ok := coerceToUint16(value)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "u16")
		}
		if e.cfg.Ints == IntVariant {
			return cur.WriteUvarint(offset, uint64(v))
		}
		return cur.WriteUint(offset, uint64(v), 2)

	case KindI16:
		v, ok := coerceToInt16(value)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "i16")
		}
		if e.cfg.Ints == IntVariant {
			return cur.WriteUvarint(offset, uint64(zigzag16(v)))
		}
		return cur.WriteUint(offset, uint64(uint16(v)), 2)

	case KindU32:
		v, ok := coerceToUint32(value)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "u32")
		}
		if e.cfg.Ints == IntVariant {
			return cur.WriteUvarint(offset, uint64(v))
		}
		return cur.WriteUint(offset, uint64(v), 4)

	case KindI32:
		v, ok := coerceToInt32(value)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "i32")
		}
		if e.cfg.Ints == IntVariant {
			return cur.WriteUvarint(offset, uint64(zigzag32(v)))
		}
		return cur.WriteUint(offset, uint64(uint32(v)), 4)

	case KindU64:
		v, ok := coerceToUint64(value)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "u64")
		}
		if e.cfg.Ints == IntVariant {
			return cur.WriteUvarint(offset, v)
		}
		return cur.WriteUint(offset, v, 8)

	case KindI64:
		v, ok := coerceToInt64(value)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "i64")
		}
		if e.cfg.Ints == IntVariant {
			return cur.WriteUvarint(offset, zigzag64(v))
		}
		return cur.WriteUint(offset, uint64(v), 8)

	case KindU128:
		v, ok := coerceToBig(value)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "u128")
		}
		if v.Sign() < 0 || v.Cmp(maxU128) > 0 {
			return offset, errors.BigintOutOfRange(errors.PhaseEncode, path, "value outside u128 range")
		}
		if e.cfg.Ints == IntVariant {
			return cur.WriteUvarintBig(offset, v)
		}
		return cur.WriteU128(offset, v)

	case KindI128:
		v, ok := coerceToBig(value)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "i128")
		}
		if v.Cmp(minI128) < 0 || v.Cmp(maxI128) > 0 {
			return offset, errors.BigintOutOfRange(errors.PhaseEncode, path, "value outside i128 range")
		}
		if e.cfg.Ints == IntVariant {
			return cur.WriteUvarintBig(offset, zigzag128(v))
		}
		return cur.WriteU128(offset, toTwosComplement128(v))

	case KindF32:
		v, ok := coerceToFloat32(value)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "f32")
		}
		return cur.WriteUint(offset, uint64(math.Float32bits(v)), 4)

	case KindF64:
		v, ok := coerceToFloat64(value)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "f64")
		}
		return cur.WriteUint(offset, math.Float64bits(v), 8)

	case KindF16, KindF128:
		return offset, errors.Unimplemented(errors.PhaseEncode, t.Kind.String()+" is reserved")

	case KindString:
		s, ok := value.(string)
		if !ok {
			return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), "string")
		}
		if !utf8.ValidString(s) {
			return offset, errors.New(errors.PhaseEncode, errors.KindInvalidType).
				Path(path...).
				WireType("string").
				Detail("invalid UTF-8 sequence").
				Build()
		}
		offset, err := e.writeLength(cur, offset, uint64(len(s)))
		if err != nil {
			return offset, err
		}
		return cur.WriteBytes(offset, []byte(s))

	case KindTuple:
		return e.encodeTuple(t, value, cur, offset, path)

	case KindArray:
		return e.encodeArray(t, value, cur, offset, path)

	case KindCollection:
		return e.encodeCollection(t, value, cur, offset, path)

	case KindStruct:
		return e.encodeStruct(t, value, cur, offset, path)

	case KindEnum:
		return e.encodeEnum(t, value, cur, offset, path)

	case KindOption:
		return e.encodeOption(t, value, cur, offset, path)

	case KindCustom:
		if t.CustomEncode == nil {
			return offset, errors.New(errors.PhaseEncode, errors.KindInvalidType).
				Path(path...).
				Detail("custom descriptor %q has no encode closure", t.CustomName).
				Build()
		}
		return t.CustomEncode(cur.buf, offset, value, e.cfg)

	default:
		return offset, errors.New(errors.PhaseEncode, errors.KindInvalidType).
			Path(path...).
			Detail("unknown descriptor kind %d", t.Kind).
			Build()
	}
}

// writeLength emits a u64 quantity under the active length encoding:
// varint in variant mode, 8 raw bytes in fixed mode.
func (e *Encoder) writeLength(cur *Cursor, offset int, n uint64) (int, error) {
	if e.cfg.Ints == IntVariant {
		return cur.WriteUvarint(offset, n)
	}
	return cur.WriteUint(offset, n, 8)
}

func (e *Encoder) encodeTuple(t *Type, value any, cur *Cursor, offset int, path []string) (int, error) {
	if len(t.Fields) == 0 {
		// Unit: zero bytes.
		return offset, nil
	}
	length, at, ok := sequenceOf(value)
	if !ok {
		return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), t.String())
	}
	if length != len(t.Fields) {
		return offset, errors.New(errors.PhaseEncode, errors.KindInvalidType).
			Path(path...).
			WireType(t.String()).
			Detail("tuple has %d elements, value has %d", len(t.Fields), length).
			Build()
	}
	var err error
	for i, f := range t.Fields {
		offset, err = e.encodeValue(f.Type, at(i), cur, offset, append(path, "["+strconv.Itoa(i)+"]"))
		if err != nil {
			return offset, err
		}
	}
	return offset, nil
}

func (e *Encoder) encodeArray(t *Type, value any, cur *Cursor, offset int, path []string) (int, error) {
	length, at, ok := sequenceOf(value)
	if !ok {
		return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), t.String())
	}
	if length != t.Len {
		return offset, errors.InvalidLength(errors.PhaseEncode, path,
			"fixed array expects exactly "+strconv.Itoa(t.Len)+" elements, value has "+strconv.Itoa(length))
	}
	var err error
	for i := 0; i < length; i++ {
		offset, err = e.encodeValue(t.Elem, at(i), cur, offset, append(path, "["+strconv.Itoa(i)+"]"))
		if err != nil {
			return offset, err
		}
	}
	return offset, nil
}

func (e *Encoder) encodeCollection(t *Type, value any, cur *Cursor, offset int, path []string) (int, error) {
	// []byte fast path for byte collections: length prefix, then one bulk
	// write.
	if b, ok := value.([]byte); ok && t.Elem.Kind == KindU8 {
		offset, err := e.writeLength(cur, offset, uint64(len(b)))
		if err != nil {
			return offset, err
		}
		return cur.WriteBytes(offset, b)
	}
	length, at, ok := sequenceOf(value)
	if !ok {
		return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), t.String())
	}
	offset, err := e.writeLength(cur, offset, uint64(length))
	if err != nil {
		return offset, err
	}
	for i := 0; i < length; i++ {
		offset, err = e.encodeValue(t.Elem, at(i), cur, offset, append(path, "["+strconv.Itoa(i)+"]"))
		if err != nil {
			return offset, err
		}
	}
	return offset, nil
}

func (e *Encoder) encodeStruct(t *Type, value any, cur *Cursor, offset int, path []string) (int, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), t.String())
	}
	var err error
	for _, f := range t.Fields {
		fieldVal, exists := m[f.Name]
		if !exists {
			return offset, errors.New(errors.PhaseEncode, errors.KindInvalidType).
				Path(path...).
				Detail("required field %q not found", f.Name).
				Build()
		}
		offset, err = e.encodeValue(f.Type, fieldVal, cur, offset, append(path, f.Name))
		if err != nil {
			return offset, err
		}
	}
	return offset, nil
}

func (e *Encoder) encodeEnum(t *Type, value any, cur *Cursor, offset int, path []string) (int, error) {
	var v Variant
	switch val := value.(type) {
	case Variant:
		v = val
	case *Variant:
		v = *val
	default:
		return offset, errors.TypeMismatch(errors.PhaseEncode, path, typeName(value), t.String())
	}
	c := t.CaseByName(v.Name)
	if c == nil {
		return offset, errors.New(errors.PhaseEncode, errors.KindInvalidVariant).
			Path(path...).
			WireType(t.String()).
			Detail("variant %q is not declared", v.Name).
			Build()
	}
	var err error
	if e.cfg.Ints == IntVariant {
		offset, err = cur.WriteUvarint(offset, uint64(c.Discriminant))
	} else {
		offset, err = cur.WriteUint(offset, uint64(c.Discriminant), 4)
	}
	if err != nil {
		return offset, err
	}
	if c.Payload == nil {
		return offset, nil
	}
	return e.encodeValue(c.Payload, v.Payload, cur, offset, append(path, v.Name))
}

func (e *Encoder) encodeOption(t *Type, value any, cur *Cursor, offset int, path []string) (int, error) {
	if IsNone(value) {
		return cur.WriteU8(offset, 0)
	}
	offset, err := cur.WriteU8(offset, 1)
	if err != nil {
		return offset, err
	}
	return e.encodeValue(t.Elem, value, cur, offset, path)
}

// sequenceOf adapts the accepted sequence shapes: []any directly, any
// other slice or array through reflection.
func sequenceOf(value any) (length int, at func(int) any, ok bool) {
	if s, isAny := value.([]any); isAny {
		return len(s), func(i int) any { return s[i] }, true
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return 0, nil, false
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return 0, nil, false
	}
	return rv.Len(), func(i int) any { return rv.Index(i).Interface() }, true
}
