package hpf

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds the tuning knobs for a PathCache. The first four fields
// are the closed configuration set from the library's spec; NodeSpacing
// tunes border-node placement; Parallel, MaxWorkers and Logger are
// ambient engineering knobs that do not change query results.
type Config struct {
	// ChunkSize is the side length, in tiles, of each square chunk.
	// Must be >= 1.
	ChunkSize int `yaml:"chunk_size"`

	// CachePaths, if true, stores full tile sequences on every edge
	// segment. If false, segments carry only endpoints and cost, and
	// resolution rematerializes tiles lazily via an intra-chunk search.
	CachePaths bool `yaml:"cache_paths"`

	// AStarFallback, if true, makes abstract queries whose cost is
	// below 2*ChunkSize fall through to a direct grid A* instead of
	// resolving the (slightly non-optimal) abstract path.
	AStarFallback bool `yaml:"a_star_fallback"`

	// PerfectPaths, if true, disables resolution optimizations (the
	// start/goal shortcut refinements always run instead of being
	// skipped when cheap to skip).
	PerfectPaths bool `yaml:"perfect_paths"`

	// NodeSpacing is the maximum tile distance between two consecutive
	// border nodes on the same run. Zero means "use ChunkSize/2".
	NodeSpacing int `yaml:"node_spacing"`

	// Parallel enables the errgroup-based worker pool for chunk
	// construction and tiles-changed regeneration. Disable this if the
	// supplied CostFunc is not safe to call concurrently.
	Parallel bool `yaml:"parallel"`

	// MaxWorkers caps the worker pool size when Parallel is true. Zero
	// means runtime.GOMAXPROCS(0).
	MaxWorkers int `yaml:"max_workers"`

	// Logger receives structured trace logs from construction and
	// TilesChanged. A nil Logger defaults to slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

// Option configures a Config during construction.
type Option func(*Config)

// DefaultConfig returns the library's recommended defaults: a chunk
// size of 16, path caching on, the A* short-path fallback on, and the
// worker pool enabled.
func DefaultConfig() Config {
	return Config{
		ChunkSize:     16,
		CachePaths:    true,
		AStarFallback: true,
		PerfectPaths:  false,
		NodeSpacing:   0,
		Parallel:      true,
		MaxWorkers:    0,
		Logger:        nil,
	}
}

// NewConfig builds a Config from DefaultConfig with the given options
// applied.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithChunkSize sets the chunk side length.
func WithChunkSize(size int) Option {
	return func(c *Config) { c.ChunkSize = size }
}

// WithCachePaths toggles full tile-path caching on edges.
func WithCachePaths(enabled bool) Option {
	return func(c *Config) { c.CachePaths = enabled }
}

// WithAStarFallback toggles the short-path direct A* fallback.
func WithAStarFallback(enabled bool) Option {
	return func(c *Config) { c.AStarFallback = enabled }
}

// WithPerfectPaths toggles disabling resolution optimizations.
func WithPerfectPaths(enabled bool) Option {
	return func(c *Config) { c.PerfectPaths = enabled }
}

// WithParallel toggles the construction/update worker pool.
func WithParallel(enabled bool) Option {
	return func(c *Config) { c.Parallel = enabled }
}

// WithMaxWorkers caps the worker pool size.
func WithMaxWorkers(n int) Option {
	return func(c *Config) { c.MaxWorkers = n }
}

// WithLogger sets the structured logging sink.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

func (c Config) nodeSpacing() int {
	if c.NodeSpacing > 0 {
		return c.NodeSpacing
	}
	spacing := c.ChunkSize / 2
	if spacing < 1 {
		spacing = 1
	}
	return spacing
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) workerLimit() int {
	if c.MaxWorkers > 0 {
		return c.MaxWorkers
	}
	return runtime.GOMAXPROCS(0)
}

func (c Config) validate() {
	if c.ChunkSize < 1 {
		panic("hpf: ChunkSize must be >= 1")
	}
}

// LoadConfig reads a YAML config file at path into DefaultConfig,
// overriding only the fields present in the file. A missing file is not
// an error: the defaults are returned unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("hpf: reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("hpf: parsing config %s: %w", path, err)
	}

	return cfg, nil
}
