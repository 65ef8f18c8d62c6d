package bincode

// Encode writes value, shaped by desc, into buf starting at offset under
// cfg, and returns the offset past the last byte written.
func Encode(desc *Type, value any, buf []byte, offset int, cfg Config) (int, error) {
	return NewEncoderWithConfig(cfg).Encode(desc, value, buf, offset)
}

// Decode reads a value shaped by desc from buf starting at offset under
// cfg, and returns the value and the offset past the last byte read.
func Decode(desc *Type, buf []byte, offset int, cfg Config) (any, int, error) {
	return NewDecoderWithConfig(cfg).Decode(desc, buf, offset)
}
