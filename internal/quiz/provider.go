package quiz

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ReloadPolicy decides when the provider rereads its source.
type ReloadPolicy string

const (
	ReloadOnStartup  ReloadPolicy = "startup" // load once, then only on Reload
	ReloadPerRequest ReloadPolicy = "request" // reread on every Bank call
)

var ErrNoBank = errors.New("question bank not loaded")

// Provider hands out the current Bank snapshot. Snapshots are never mutated;
// Reload swaps in a new one.
type Provider struct {
	src    Source
	policy ReloadPolicy

	mu  sync.Mutex // serializes reloads
	cur atomic.Pointer[Bank]
}

func NewProvider(src Source, policy ReloadPolicy) *Provider {
	if policy == "" {
		policy = ReloadOnStartup
	}
	return &Provider{src: src, policy: policy}
}

// Reload reads the source and publishes the result. On error the previous
// snapshot stays in place.
func (p *Provider) Reload(ctx context.Context) (*Bank, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	qs, err := p.src.Load(ctx)
	if err != nil {
		return nil, err
	}
	b := NewBank(qs)
	p.cur.Store(b)
	return b, nil
}

// Bank returns the snapshot to use for one request.
func (p *Provider) Bank(ctx context.Context) (*Bank, error) {
	if p.policy == ReloadPerRequest {
		qs, err := p.src.Load(ctx)
		if err != nil {
			return nil, err
		}
		b := NewBank(qs)
		p.cur.Store(b)
		return b, nil
	}
	if b := p.cur.Load(); b != nil {
		return b, nil
	}
	return nil, ErrNoBank
}

// Ready reports whether a snapshot has been loaded.
func (p *Provider) Ready() bool { return p.cur.Load() != nil }
