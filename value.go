package bincode

import (
	"math"
	"math/big"
)

// Variant is the in-memory carrier for an enum value: the variant name and
// its payload. Callers never touch the numeric discriminant directly.
type Variant struct {
	Payload any
	Name    string
}

type noneMarker struct{}

// None is the absent marker for option values. A present option carries
// the inner value directly.
var None any = noneMarker{}

// IsNone reports whether v is the absent option marker. A nil value is
// treated as absent too.
func IsNone(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(noneMarker)
	return ok
}

// typeName mirrors the shape used in error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case Variant:
		return "bincode.Variant"
	case noneMarker:
		return "bincode.None"
	case *big.Int:
		return "*big.Int"
	case []any:
		return "[]any"
	case []byte:
		return "[]byte"
	case map[string]any:
		return "map[string]any"
	}
	switch v.(type) {
	case bool:
		return "bool"
	case string:
		return "string"
	case uint8:
		return "uint8"
	case uint16:
		return "uint16"
	case uint32:
		return "uint32"
	case uint64:
		return "uint64"
	case int8:
		return "int8"
	case int16:
		return "int16"
	case int32:
		return "int32"
	case int64:
		return "int64"
	case int:
		return "int"
	case uint:
		return "uint"
	case float32:
		return "float32"
	case float64:
		return "float64"
	}
	return "unknown"
}

// Each lane accepts its own Go type plus a few other Go numeric types,
// range-checked; wider lanes accept more of them. Only the 32-bit lanes
// accept float64, the way JSON-decoded numbers arrive.

func coerceToUint8(value any) (uint8, bool) {
	switch v := value.(type) {
	case uint8:
		return v, true
	case int8:
		if v >= 0 {
			return uint8(v), true
		}
	case int:
		if v >= 0 && v <= math.MaxUint8 {
			return uint8(v), true
		}
	}
	return 0, false
}

func coerceToInt8(value any) (int8, bool) {
	switch v := value.(type) {
	case int8:
		return v, true
	case uint8:
		if v <= math.MaxInt8 {
			return int8(v), true
		}
	case int:
		if v >= math.MinInt8 && v <= math.MaxInt8 {
			return int8(v), true
		}
	}
	return 0, false
}

func coerceToUint16(value any) (uint16, bool) {
	switch v := value.(type) {
	case uint16:
		return v, true
	case uint8:
		return uint16(v), true
	case int:
		if v >= 0 && v <= math.MaxUint16 {
			return uint16(v), true
		}
	}
	return 0, false
}

func coerceToInt16(value any) (int16, bool) {
	switch v := value.(type) {
	case int16:
		return v, true
	case int8:
		return int16(v), true
	case uint8:
		return int16(v), true
	case int:
		if v >= math.MinInt16 && v <= math.MaxInt16 {
			return int16(v), true
		}
	}
	return 0, false
}

// coerceToUint32 handles JSON decoded numbers (float64) and other numeric
// types.
func coerceToUint32(value any) (uint32, bool) {
	switch v := value.(type) {
	case uint32:
		return v, true
	case uint8:
		return uint32(v), true
	case uint16:
		return uint32(v), true
	case int8:
		if v >= 0 {
			return uint32(v), true
		}
	case int16:
		if v >= 0 {
			return uint32(v), true
		}
	case float64:
		if v >= 0 && v <= math.MaxUint32 && v == float64(uint32(v)) {
			return uint32(v), true
		}
	case int:
		if v >= 0 && v <= math.MaxUint32 {
			return uint32(v), true
		}
	case int64:
		if v >= 0 && v <= math.MaxUint32 {
			return uint32(v), true
		}
	case uint:
		if v <= math.MaxUint32 {
			return uint32(v), true
		}
	case uint64:
		if v <= math.MaxUint32 {
			return uint32(v), true
		}
	case int32:
		if v >= 0 {
			return uint32(v), true
		}
	}
	return 0, false
}

func coerceToInt32(value any) (int32, bool) {
	switch v := value.(type) {
	case int32:
		return v, true
	case int8:
		return int32(v), true
	case int16:
		return int32(v), true
	case uint8:
		return int32(v), true
	case uint16:
		return int32(v), true
	case float64:
		if v >= math.MinInt32 && v <= math.MaxInt32 && v == float64(int32(v)) {
			return int32(v), true
		}
	case int:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return int32(v), true
		}
	case int64:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return int32(v), true
		}
	case uint32:
		if v <= math.MaxInt32 {
			return int32(v), true
		}
	}
	return 0, false
}

func coerceToUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case *big.Int:
		if v.Sign() >= 0 && v.IsUint64() {
			return v.Uint64(), true
		}
	}
	return 0, false
}

func coerceToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case *big.Int:
		if v.IsInt64() {
			return v.Int64(), true
		}
	}
	return 0, false
}

// coerceToBig accepts the 128-bit lane's value shapes. The returned big.Int
// is freshly allocated or the caller's own; the engine never mutates it.
func coerceToBig(value any) (*big.Int, bool) {
	switch v := value.(type) {
	case *big.Int:
		return v, true
	case uint64:
		return new(big.Int).SetUint64(v), true
	case int64:
		return big.NewInt(v), true
	case int:
		return big.NewInt(int64(v)), true
	case uint:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), true
	case int32:
		return big.NewInt(int64(v)), true
	}
	return nil, false
}

func coerceToFloat32(value any) (float32, bool) {
	switch v := value.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	}
	return 0, false
}

func coerceToFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}
