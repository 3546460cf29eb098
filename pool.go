package lastwish

import (
	"context"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent generations; each holds a whole document
	// and its decoded artwork in memory.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for image downloads and decoding.
	cpuDivisor = 2
)

// GeneratorPool bounds how many documents are generated at once.
// Slots are created lazily on first acquire. All slots share one
// Generator, which is safe for concurrent use.
type GeneratorPool struct {
	gen     *Generator
	size    int
	sem     chan struct{}
	mu      sync.Mutex
	created int
	closed  bool
}

// NewGeneratorPool creates a pool allowing n concurrent generations.
func NewGeneratorPool(gen *Generator, n int) *GeneratorPool {
	if n < 1 {
		n = 1
	}

	return &GeneratorPool{
		gen:  gen,
		size: n,
		sem:  make(chan struct{}, n),
	}
}

// Acquire takes a slot, blocking while all slots are in use. It returns
// false if ctx is done first or the pool is closed.
func (p *GeneratorPool) Acquire(ctx context.Context) bool {
	// Try to get a released slot (non-blocking)
	select {
	case _, ok := <-p.sem:
		return ok
	default:
	}

	// Check if we can create a new slot
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return false
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()
		return true
	}
	p.mu.Unlock()

	// All slots created, wait for one to be released
	select {
	case _, ok := <-p.sem:
		return ok
	case <-ctx.Done():
		return false
	}
}

// Release returns a slot to the pool.
// The channel holds one entry per slot, so the send under the lock never
// blocks; holding the lock keeps it from racing with Close.
func (p *GeneratorPool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- struct{}{}
}

// Generate runs one generation inside a pool slot.
func (p *GeneratorPool) Generate(ctx context.Context, input Input) ([]byte, error) {
	if !p.Acquire(ctx) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrPoolClosed
	}
	defer p.Release()
	return p.gen.Generate(ctx, input)
}

// Close stops the pool. Waiting and later acquires fail.
func (p *GeneratorPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.sem)
	return nil
}

// Size returns the pool capacity.
func (p *GeneratorPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the optimal pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
