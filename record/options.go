package record

import "github.com/scigolib/hipo/internal/options"

// Config holds the RecordBuilder settings that may be overridden through
// functional options at construction time.
type Config struct {
	maxEventCount   uint32
	maxPayloadBytes uint32
	computeChecksum bool
}

// defaultMaxEventCount and defaultMaxPayloadBytes bound an unconfigured
// builder generously; FileAssembler sets neither and passes its caller's
// options through to its builders unchanged.
const (
	defaultMaxEventCount   = 1 << 20
	defaultMaxPayloadBytes = 8 * 1024 * 1024
)

func defaultConfig() *Config {
	return &Config{
		maxEventCount:   defaultMaxEventCount,
		maxPayloadBytes: defaultMaxPayloadBytes,
		computeChecksum: false,
	}
}

// Option configures a RecordBuilder's Config at construction time.
type Option = options.Option[*Config]

// WithMaxEventCount caps the number of events a single record may hold.
func WithMaxEventCount(n uint32) Option {
	return options.NoError(func(c *Config) { c.maxEventCount = n })
}

// WithMaxPayloadBytes caps the total unpadded event-payload size of a
// single record.
func WithMaxPayloadBytes(n uint32) Option {
	return options.NoError(func(c *Config) { c.maxPayloadBytes = n })
}

// WithChecksum enables computing an xxhash64 checksum of the on-disk
// payload region, stored in the record header's second reserved word and
// verified on read.
func WithChecksum(enabled bool) Option {
	return options.NoError(func(c *Config) { c.computeChecksum = enabled })
}
