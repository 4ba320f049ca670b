package photobook

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"photo-gallery/pkg/models"
)

// LoadFunc loads the photobook of a gallery
type LoadFunc func(ctx context.Context, galleryID string) (*models.Photobook, error)

// Result is the outcome of one load
type Result struct {
	GalleryID string
	Book      *models.Photobook
	Err       error
}

// Session loads photobooks asynchronously and applies only the result of the most
// recent Open. Earlier loads are cancelled and their late results discarded.
type Session struct {
	load     LoadFunc
	onResult func(Result)
	logger   *zap.Logger

	// deliver serializes applying results so callbacks run in Open order
	deliver sync.Mutex

	mu        sync.Mutex
	seq       uint64
	requested string
	cancel    context.CancelFunc
	current   *Result

	wg sync.WaitGroup
}

// NewSession returns a session using load. onResult, when not nil, is called with
// every applied result.
func NewSession(load LoadFunc, onResult func(Result), logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		load:     load,
		onResult: onResult,
		logger:   logger,
	}
}

// Open starts loading galleryID and supersedes any load in flight
func (s *Session) Open(ctx context.Context, galleryID string) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.seq++
	seq := s.seq
	s.requested = galleryID
	s.cancel = cancel
	s.current = nil
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		book, err := s.load(ctx, galleryID)
		s.apply(seq, Result{GalleryID: galleryID, Book: book, Err: err})
	}()
}

func (s *Session) apply(seq uint64, result Result) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	if seq != s.seq || result.GalleryID != s.requested {
		s.mu.Unlock()
		s.logger.Debug("Discarding stale photobook load",
			zap.String("gallery", result.GalleryID),
			zap.Uint64("seq", seq))
		return
	}
	s.current = &result
	onResult := s.onResult
	s.mu.Unlock()

	if onResult != nil {
		onResult(result)
	}
}

// Requested returns the gallery of the latest Open
func (s *Session) Requested() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requested
}

// Current returns the applied result; false while the latest load is in flight
func (s *Session) Current() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Result{}, false
	}
	return *s.current, true
}

// Wait blocks until every started load has returned
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels the load in flight and waits for all loads to return
func (s *Session) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()
	s.wg.Wait()
}
