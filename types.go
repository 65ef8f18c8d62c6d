package bincode

import (
	"github.com/wippyai/bincode/internal/types"
)

type Kind = types.Kind

const (
	KindBool       = types.KindBool
	KindU8         = types.KindU8
	KindI8         = types.KindI8
	KindU16        = types.KindU16
	KindI16        = types.KindI16
	KindU32        = types.KindU32
	KindI32        = types.KindI32
	KindU64        = types.KindU64
	KindI64        = types.KindI64
	KindU128       = types.KindU128
	KindI128       = types.KindI128
	KindF16        = types.KindF16
	KindF32        = types.KindF32
	KindF64        = types.KindF64
	KindF128       = types.KindF128
	KindString     = types.KindString
	KindTuple      = types.KindTuple
	KindArray      = types.KindArray
	KindCollection = types.KindCollection
	KindStruct     = types.KindStruct
	KindEnum       = types.KindEnum
	KindOption     = types.KindOption
	KindCustom     = types.KindCustom
)

type Type = types.Type
type Field = types.Field
type Case = types.Case

type Config = types.Config
type Endianness = types.Endianness
type IntMode = types.IntMode

const (
	LittleEndian = types.LittleEndian
	BigEndian    = types.BigEndian

	IntVariant = types.IntVariant
	IntFixed   = types.IntFixed

	NoLimit = types.NoLimit
)

type EncodeFunc = types.EncodeFunc
type DecodeFunc = types.DecodeFunc
