package bincode

// Standard returns the reference bincode configuration: little-endian,
// variant integer encoding, no byte limit.
func Standard() Config {
	return Config{Endian: LittleEndian, Ints: IntVariant, Limit: NoLimit}
}

// Legacy returns the fixed-width configuration: little-endian, raw
// fixed-width integers and lengths, no byte limit.
func Legacy() Config {
	return Config{Endian: LittleEndian, Ints: IntFixed, Limit: NoLimit}
}

// WithEndian returns a copy of cfg with the byte order replaced.
func WithEndian(cfg Config, e Endianness) Config {
	cfg.Endian = e
	return cfg
}

// WithLimit returns a copy of cfg with the byte ceiling replaced. Every
// cursor operation that would touch a byte at index >= limit fails with
// OverflowLimit.
func WithLimit(cfg Config, limit uint64) Config {
	cfg.Limit = limit
	return cfg
}
