package session

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/doeshing/clio-go/internal/ports"
)

// Factory creates a new session on demand.
type Factory func(ctx context.Context) (ports.Session, error)

// Provider owns the host's single session. It creates the session on first
// Acquire and hands the same one out until it ends, then replaces it.
type Provider struct {
	mu      sync.Mutex
	factory Factory
	current ports.Session
	logger  ports.Logger
}

// NewProvider builds a provider around factory.
func NewProvider(factory Factory, logger ports.Logger) *Provider {
	return &Provider{factory: factory, logger: logger}
}

// NewShellProvider builds a provider spawning shell sessions wired to the terminal.
func NewShellProvider(shell string, logger ports.Logger) *Provider {
	return NewShellProviderWithOutput(shell, os.Stdout, os.Stderr, logger)
}

// NewShellProviderWithOutput is NewShellProvider with explicit output streams.
func NewShellProviderWithOutput(shell string, stdout, stderr io.Writer, logger ports.Logger) *Provider {
	return NewProvider(func(context.Context) (ports.Session, error) {
		return StartShell(shell, stdout, stderr)
	}, logger)
}

// Acquire implements ports.SessionProvider.
func (p *Provider) Acquire(ctx context.Context) (ports.Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil && p.current.Alive() {
		return p.current, nil
	}
	if p.current != nil && p.logger != nil {
		p.logger.Info("session ended, starting a new one", map[string]interface{}{"session": p.current.ID()})
	}
	sess, err := p.factory(ctx)
	if err != nil {
		return nil, err
	}
	p.current = sess
	if p.logger != nil {
		p.logger.Debug("session started", map[string]interface{}{"session": sess.ID()})
	}
	return sess, nil
}

// Close ends the current session, if any, after it drains.
func (p *Provider) Close() error {
	p.mu.Lock()
	sess := p.current
	p.current = nil
	p.mu.Unlock()
	if sess == nil {
		return nil
	}
	return sess.Close()
}

var _ ports.SessionProvider = (*Provider)(nil)
