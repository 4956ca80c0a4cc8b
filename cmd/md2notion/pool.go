package main

import (
	"context"
	"runtime"
	"sync"

	md2notion "github.com/alnah/go-md2notion"
	"github.com/alnah/go-md2notion/internal/logging"
)

// maxPoolSize caps parallel conversions.
const maxPoolSize = 8

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input md2notion.Input) (*md2notion.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*md2notion.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() Converter
	Release(Converter)
	Size() int
}

// ConverterPool hands out converters to batch workers. Each converter logs
// with its own worker field. Converters are created lazily on first acquire.
type ConverterPool struct {
	size     int
	opts     []md2notion.Option
	provider logging.Provider
	first    *md2notion.Converter
	sem      chan Converter
	mu       sync.Mutex
	created  int
}

// Compile-time check that ConverterPool implements Pool.
var _ Pool = (*ConverterPool)(nil)

// NewConverterPool creates a pool with capacity for n converters built with
// opts. The first converter is built eagerly so option errors surface here.
func NewConverterPool(n int, provider logging.Provider, opts ...md2notion.Option) (*ConverterPool, error) {
	if n < 1 {
		n = 1
	}

	p := &ConverterPool{
		size:     n,
		opts:     opts,
		provider: provider,
		sem:      make(chan Converter, n),
	}

	first, err := p.build(0)
	if err != nil {
		return nil, err
	}
	p.first = first
	p.created = 1
	p.sem <- first

	return p, nil
}

// Acquire gets a converter from the pool, creating one if needed.
// Blocks if all converters are in use.
func (p *ConverterPool) Acquire() Converter {
	select {
	case c := <-p.sem:
		return c
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		worker := p.created
		p.created++
		p.mu.Unlock()

		c, err := p.build(worker)
		if err != nil {
			// Same options as the first converter; share it instead.
			return p.first
		}
		return c
	}
	p.mu.Unlock()

	return <-p.sem
}

// Release returns a converter to the pool.
func (p *ConverterPool) Release(c Converter) {
	select {
	case p.sem <- c:
	default:
		// The shared fallback may overflow the channel; drop it.
	}
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

func (p *ConverterPool) build(worker int) (*md2notion.Converter, error) {
	logger := logging.WithFields(
		logging.ModuleLogger(p.provider, logging.RenderModule),
		map[string]any{"worker": worker},
	)
	opts := append([]md2notion.Option{md2notion.WithLogger(logger)}, p.opts...)
	return md2notion.NewConverter(opts...)
}

// resolvePoolSize determines the pool size.
// Priority: explicit flag > env > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return min(envWorkers, maxPoolSize)
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0) / 2

	if n < 1 {
		return 1
	}
	if n > maxPoolSize {
		return maxPoolSize
	}
	return n
}
