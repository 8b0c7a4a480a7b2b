// Package config holds the translator's single typed configuration
// record and the functional-option constructors used to build it,
// following the same pattern the teacher uses to build a *cel.Env from
// a list of cel.EnvOption values (see cel/options.go).
package config

import "fmt"

// IntSize is the configured enum-backing integer width. Enum values
// carrying an ICE invoked where an ICE is required must be representable
// by this width; spec.md §6 restricts it to 16 or 32.
type IntSize int

const (
	Int16 IntSize = 16
	Int32 IntSize = 32
)

func (s IntSize) valid() bool {
	return s == Int16 || s == Int32
}

// Config is the single configuration record threaded through ingestion
// and classification.
type Config struct {
	// IntSize determines the enum-fit check in the object-like cascade.
	IntSize IntSize

	// SourceRoot narrows ingestion to macros defined under this prefix;
	// empty means every macro with a valid definition location.
	SourceRoot string
}

// Option configures a Config under construction. Mirrors cel.EnvOption's
// shape, but Config has no other state to thread through, so an Option is
// a plain mutator rather than a (*Config, error) pair.
type Option func(*Config) error

// New builds a Config from a sequence of Options, defaulting IntSize to
// Int32 as the original tool does.
func New(opts ...Option) (Config, error) {
	cfg := Config{IntSize: Int32}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// WithIntSize sets the enum-backing integer width.
func WithIntSize(size IntSize) Option {
	return func(c *Config) error {
		if !size.valid() {
			return fmt.Errorf("config: invalid int size %d, must be 16 or 32", size)
		}
		c.IntSize = size
		return nil
	}
}

// WithSourceRoot sets the source-directory prefix ingestion narrows to.
func WithSourceRoot(root string) Option {
	return func(c *Config) error {
		c.SourceRoot = root
		return nil
	}
}
