package photobook

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"photo-gallery/pkg/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// gatedLoader blocks each load until its gallery is released
type gatedLoader struct {
	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
}

func newGatedLoader() *gatedLoader {
	return &gatedLoader{
		gates:   make(map[string]chan struct{}),
		started: make(chan string, 10),
	}
}

func (l *gatedLoader) gate(id string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.gates[id]; !ok {
		l.gates[id] = make(chan struct{})
	}
	return l.gates[id]
}

func (l *gatedLoader) release(id string) {
	close(l.gate(id))
}

// load ignores cancellation so late results really arrive
func (l *gatedLoader) load(_ context.Context, id string) (*models.Photobook, error) {
	gate := l.gate(id)
	l.started <- id
	<-gate
	return &models.Photobook{ID: id}, nil
}

func waitStarted(t *testing.T, l *gatedLoader, want string) {
	t.Helper()
	select {
	case got := <-l.started:
		require.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("load of %s never started", want)
	}
}

func TestSessionDiscardsStaleLoad(t *testing.T) {
	loader := newGatedLoader()

	var mu sync.Mutex
	var applied []string
	s := NewSession(loader.load, func(r Result) {
		mu.Lock()
		applied = append(applied, r.GalleryID)
		mu.Unlock()
	}, nil)

	s.Open(context.Background(), "20240623/1")
	waitStarted(t, loader, "20240623/1")

	s.Open(context.Background(), "20240623/2")
	waitStarted(t, loader, "20240623/2")

	loader.release("20240623/2")
	loader.release("20240623/1")
	s.Wait()

	result, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "20240623/2", result.GalleryID)
	assert.Equal(t, "20240623/2", result.Book.ID)
	assert.Equal(t, "20240623/2", s.Requested())

	mu.Lock()
	assert.Equal(t, []string{"20240623/2"}, applied)
	mu.Unlock()
}

func TestSessionReopenSameGallery(t *testing.T) {
	loader := newGatedLoader()
	s := NewSession(loader.load, nil, nil)

	s.Open(context.Background(), "a")
	waitStarted(t, loader, "a")
	_, ok := s.Current()
	assert.False(t, ok)

	loader.release("a")
	s.Wait()

	result, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "a", result.GalleryID)
	s.Close()
}

func TestSessionCancelsSupersededLoad(t *testing.T) {
	cancelled := make(chan struct{})
	load := func(ctx context.Context, id string) (*models.Photobook, error) {
		if id == "slow" {
			<-ctx.Done()
			close(cancelled)
			return nil, ctx.Err()
		}
		return &models.Photobook{ID: id}, nil
	}

	s := NewSession(load, nil, nil)
	s.Open(context.Background(), "slow")
	s.Open(context.Background(), "fast")

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded load was not cancelled")
	}
	s.Close()

	result, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "fast", result.GalleryID)
	assert.NoError(t, result.Err)
}

func TestSessionReportsLoadError(t *testing.T) {
	load := func(context.Context, string) (*models.Photobook, error) {
		return nil, ErrNoPhotos
	}

	s := NewSession(load, nil, nil)
	s.Open(context.Background(), "empty")
	s.Wait()

	result, ok := s.Current()
	require.True(t, ok)
	assert.True(t, errors.Is(result.Err, ErrNoPhotos))
	assert.Nil(t, result.Book)
}

func TestSessionDeliversNewerResultLast(t *testing.T) {
	loader := newGatedLoader()
	entered := make(chan struct{})
	proceed := make(chan struct{})

	var mu sync.Mutex
	var applied []string
	s := NewSession(loader.load, func(r Result) {
		if r.GalleryID == "20240623/1" {
			close(entered)
			<-proceed
		}
		mu.Lock()
		applied = append(applied, r.GalleryID)
		mu.Unlock()
	}, nil)

	s.Open(context.Background(), "20240623/1")
	waitStarted(t, loader, "20240623/1")
	loader.release("20240623/1")
	<-entered

	// The newer load finishes while the older callback is still running.
	s.Open(context.Background(), "20240623/2")
	waitStarted(t, loader, "20240623/2")
	loader.release("20240623/2")
	time.Sleep(50 * time.Millisecond)

	close(proceed)
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"20240623/1", "20240623/2"}, applied)

	current, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "20240623/2", current.GalleryID)
}
