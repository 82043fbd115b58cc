package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/doeshing/clio-go/internal/ports"
)

type fakeSession struct {
	id     string
	alive  bool
	closed bool
}

func (f *fakeSession) ID() string          { return f.id }
func (f *fakeSession) Show()               {}
func (f *fakeSession) Submit(string) error { return nil }
func (f *fakeSession) Alive() bool         { return f.alive }

func (f *fakeSession) Close() error {
	f.closed = true
	f.alive = false
	return nil
}

func countingFactory(created *[]*fakeSession) Factory {
	var mu sync.Mutex
	return func(context.Context) (ports.Session, error) {
		mu.Lock()
		defer mu.Unlock()
		sess := &fakeSession{id: string(rune('a' + len(*created))), alive: true}
		*created = append(*created, sess)
		return sess, nil
	}
}

func TestProviderCreatesLazilyAndReuses(t *testing.T) {
	var created []*fakeSession
	provider := NewProvider(countingFactory(&created), nil)
	assert.Equal(t, len(created), 0)

	first, err := provider.Acquire(context.Background())
	assert.NilError(t, err)
	second, err := provider.Acquire(context.Background())
	assert.NilError(t, err)

	assert.Equal(t, len(created), 1)
	assert.Equal(t, first.ID(), second.ID())
}

func TestProviderReplacesEndedSession(t *testing.T) {
	var created []*fakeSession
	provider := NewProvider(countingFactory(&created), nil)

	first, err := provider.Acquire(context.Background())
	assert.NilError(t, err)
	created[0].alive = false

	second, err := provider.Acquire(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, len(created), 2)
	assert.Assert(t, first.ID() != second.ID())
}

func TestProviderConcurrentAcquireSharesOneSession(t *testing.T) {
	var created []*fakeSession
	provider := NewProvider(countingFactory(&created), nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := provider.Acquire(context.Background())
			assert.Check(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, len(created), 1)
}

func TestProviderFactoryError(t *testing.T) {
	boom := errors.New("no shell")
	provider := NewProvider(func(context.Context) (ports.Session, error) { return nil, boom }, nil)

	_, err := provider.Acquire(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestProviderCloseClosesCurrent(t *testing.T) {
	var created []*fakeSession
	provider := NewProvider(countingFactory(&created), nil)

	assert.NilError(t, provider.Close())
	_, err := provider.Acquire(context.Background())
	assert.NilError(t, err)
	assert.NilError(t, provider.Close())
	assert.Assert(t, created[0].closed)
}
