// File: api.go
// Role: Config/Option surface for BuildFromReference and BuildParallel
//       (spec.md §4.4, SPEC_FULL.md §4.7), in the functional-options shape
//       used throughout the teacher's builder package.
package construct

import "github.com/lvlath-labs/vgraph/progress"

// Config aggregates every knob BuildFromReference and BuildParallel consult.
// It is resolved once per call and passed by value downstream.
type Config struct {
	primaryPathName string
	phasePaths      bool
	altPaths        bool
	shardSize       int
	observer        *progress.Observer
}

// Option mutates a Config under construction.
type Option func(*Config)

const defaultShardSize = 5000

// newConfig applies defaults, then every option in order (last wins).
func newConfig(contig string, opts ...Option) Config {
	cfg := Config{
		primaryPathName: contig,
		shardSize:       defaultShardSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.primaryPathName == "" {
		cfg.primaryPathName = contig
	}
	return cfg
}

// WithPrimaryPathName overrides the name given to the reference backbone
// path (default: the contig name passed to BuildFromReference).
func WithPrimaryPathName(name string) Option {
	return func(c *Config) { c.primaryPathName = name }
}

// WithPhasePaths threads one path per sample seen across records, selecting
// the ALT-side of a bubble whenever that sample's first allele call points
// at the ALT sequence the bubble was built from, and the REF-side otherwise
// (spec.md §4.4's "optionally weaving phase-set ... paths").
func WithPhasePaths() Option {
	return func(c *Config) { c.phasePaths = true }
}

// WithAltPaths threads one path per decomposed sub-allele, covering just
// that bubble's local span (left flank, ALT node, right flank), so every
// ALT sequence is reachable as a named path independent of any sample's
// genotype (spec.md §4.4's "... and alt paths").
func WithAltPaths() Option {
	return func(c *Config) { c.altPaths = true }
}

// WithShardSize sets the number of VariantRecord entries BuildParallel
// assigns to each shard before running BuildFromReference over it and
// merging the result into its neighbors (SPEC_FULL.md §4.7).
func WithShardSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.shardSize = n
		}
	}
}

// WithObserver attaches obs to the mutate.Graph BuildFromReference returns,
// so its own milestones and every subsequent mutate.Graph operation on the
// same graph report through the same run id.
func WithObserver(obs *progress.Observer) Option {
	return func(c *Config) { c.observer = obs }
}
