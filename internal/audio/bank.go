package audio

import (
	"context"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Bank holds every synthesized effect and the ambient loop. A missing effect
// plays as silence.
type Bank struct {
	mu      sync.RWMutex
	effects map[Effect][]int16
	loop    []int16
}

// NewBank returns an empty bank.
func NewBank() *Bank {
	return &Bank{effects: make(map[Effect][]int16)}
}

// BuildBank synthesizes all effects and the ambient loop in parallel. A
// failing effect is logged and left silent; only cancellation of ctx is
// returned as an error. logger may be nil.
func BuildBank(ctx context.Context, logger *log.Logger) (*Bank, error) {
	return buildBank(ctx, logger, Synthesize)
}

func buildBank(ctx context.Context, logger *log.Logger, synth func(Effect) ([]int16, error)) (*Bank, error) {
	b := NewBank()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, e := range Effects() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pcm, err := synth(e)
			if err != nil {
				if logger != nil {
					logger.Warn("effect disabled", "effect", e, "error", err)
				}
				return nil
			}
			b.set(e, pcm)
			return nil
		})
	}
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		loop := Ambient()
		b.mu.Lock()
		b.loop = loop
		b.mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debug("audio bank ready", "effects", b.Len(), "loop_samples", len(b.Loop()))
	}
	return b, nil
}

func (b *Bank) set(e Effect, pcm []int16) {
	b.mu.Lock()
	b.effects[e] = pcm
	b.mu.Unlock()
}

// Effect returns the samples of e, or nil when it failed to synthesize.
func (b *Bank) Effect(e Effect) []int16 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.effects[e]
}

// Loop returns the ambient loop.
func (b *Bank) Loop() []int16 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loop
}

// Len returns the number of synthesized effects.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.effects)
}
