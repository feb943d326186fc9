package timescript

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/timescript/pkg/compiler"
	"github.com/aretw0/timescript/pkg/domain"
	"github.com/aretw0/timescript/pkg/export"
	"github.com/aretw0/timescript/pkg/observability"
	"github.com/aretw0/timescript/pkg/ports"
	"github.com/aretw0/timescript/pkg/validator"
)

// Engine is the high-level entry point for the TimeScript library.
// It is safe for concurrent use.
type Engine struct {
	compiler  *compiler.Compiler
	validator *validator.Validator
	cache     ports.DocumentCache
	metrics   *observability.Metrics
	logger    *slog.Logger
	vcfg      *validator.Config
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithCache enables compilation caching.
func WithCache(cache ports.DocumentCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithMetrics records engine activity on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithValidatorConfig replaces the validator's value checks.
func WithValidatorConfig(cfg validator.Config) Option {
	return func(e *Engine) {
		e.vcfg = &cfg
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	eng.compiler = compiler.New(compiler.WithLogger(eng.logger))
	vopts := []validator.Option{validator.WithLogger(eng.logger)}
	if eng.vcfg != nil {
		vopts = append(vopts, validator.WithConfig(*eng.vcfg))
	}
	eng.validator = validator.New(vopts...)
	return eng
}

// Digest returns the cache key of a source text.
func Digest(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Compile builds the document tree of source. Cache failures are logged and
// never fail a compile; the only error is a done context.
func (e *Engine) Compile(ctx context.Context, source string) (*domain.Compilation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	key := Digest(source)

	outcome := observability.CacheDisabled
	if e.cache != nil {
		cached, err := e.cache.Get(ctx, key)
		switch {
		case err == nil:
			e.logger.Debug("compilation cache hit", "key", key)
			e.observe(observability.CacheHit, cached, start)
			return cached, nil
		case errors.Is(err, domain.ErrCacheMiss):
			outcome = observability.CacheMiss
		default:
			outcome = observability.CacheMiss
			e.logger.Warn("compilation cache read failed", "key", key, "error", err)
		}
	}

	res := e.compiler.Compile(source)

	if e.cache != nil {
		if err := e.cache.Put(ctx, key, res); err != nil {
			e.logger.Warn("compilation cache write failed", "key", key, "error", err)
		}
	}
	e.observe(outcome, res, start)
	return res, nil
}

func (e *Engine) observe(outcome string, res *domain.Compilation, start time.Time) {
	if e.metrics == nil {
		return
	}
	e.metrics.ObserveCompile(outcome, res)
	e.metrics.ObserveDuration("compile", start)
}

// Validate lints source. The context is accepted for symmetry with Compile;
// validation never blocks.
func (e *Engine) Validate(ctx context.Context, source string) []domain.Diagnostic {
	start := time.Now()
	diags := e.validator.Validate(source)
	if e.metrics != nil {
		e.metrics.ObserveDiagnostics(observability.SourceValidator, diags)
		e.metrics.ObserveDuration("validate", start)
	}
	return diags
}

// Export compiles source and encodes the document in format.
func (e *Engine) Export(ctx context.Context, source string, format export.Format) ([]byte, error) {
	res, err := e.Compile(ctx, source)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	data, err := export.Encode(res.Document, format)
	if err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.ObserveDuration("export", start)
	}
	return data, nil
}

// ValidatorConfig returns the value checks in effect.
func (e *Engine) ValidatorConfig() validator.Config {
	return e.validator.Config()
}
