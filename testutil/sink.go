package testutil

import "sync"

// CaptureSink records attributes for assertions. It satisfies the emitter's
// sink contract and is safe for use from the background goroutine.
type CaptureSink struct {
	mu    sync.Mutex
	attrs map[string]any
	ended bool
	err   error
}

func NewCaptureSink() *CaptureSink {
	return &CaptureSink{attrs: map[string]any{}}
}

func (s *CaptureSink) SetAttribute(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs[key] = value
}

func (s *CaptureSink) End(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ended = true
	s.err = err
}

// Attr returns the recorded value for key, or nil.
func (s *CaptureSink) Attr(key string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attrs[key]
}

// Has reports whether key was recorded.
func (s *CaptureSink) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.attrs[key]
	return ok
}

// Attrs returns a copy of everything recorded so far.
func (s *CaptureSink) Attrs() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.attrs))
	for k, v := range s.attrs {
		out[k] = v
	}
	return out
}

// Ended reports whether End was called, and with what error.
func (s *CaptureSink) Ended() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended, s.err
}
