// Runtime reload of the configuration file.
//
// Polling based; the instrumentation toggles can be flipped without
// restarting the host process.
package config

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Reloader watches one configuration file and re-resolves the full
// configuration when its modification time advances. A file that fails to
// load or validate keeps the previous configuration in place.
type Reloader struct {
	mu sync.RWMutex

	path     string
	interval time.Duration

	running   bool
	stopChan  chan struct{}
	callbacks []func(*Config)

	current *Config
	lastMod time.Time

	logger *zap.Logger
}

// ReloaderOption configures a Reloader.
type ReloaderOption func(*Reloader)

// WithPollInterval sets how often the file is checked.
func WithPollInterval(d time.Duration) ReloaderOption {
	return func(r *Reloader) { r.interval = d }
}

// WithReloaderLogger sets the logger.
func WithReloaderLogger(logger *zap.Logger) ReloaderOption {
	return func(r *Reloader) { r.logger = logger }
}

// NewReloader resolves the initial configuration from path and prepares to
// watch it. A missing file is not an error; defaults apply until it shows
// up.
func NewReloader(path string, opts ...ReloaderOption) (*Reloader, error) {
	r := &Reloader{
		path:     path,
		interval: time.Second,
		stopChan: make(chan struct{}),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	cfg, err := NewLoader().WithConfigPath(path).WithValidator((*Config).Validate).Load()
	if err != nil {
		return nil, fmt.Errorf("initial config load: %w", err)
	}
	r.current = cfg

	if info, err := os.Stat(path); err == nil {
		r.lastMod = info.ModTime()
	}
	return r, nil
}

// Current returns the most recently applied configuration.
func (r *Reloader) Current() *Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// OnReload registers a callback invoked with each successfully applied
// configuration. Callbacks run on the watch goroutine and must not block.
func (r *Reloader) OnReload(cb func(*Config)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks = append(r.callbacks, cb)
}

// Start begins polling. It returns an error if already running.
func (r *Reloader) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("reloader already running")
	}
	r.running = true
	r.mu.Unlock()

	go r.pollLoop(ctx)

	r.logger.Info("config reloader started",
		zap.String("path", r.path),
		zap.Duration("interval", r.interval))
	return nil
}

// Stop halts polling. Safe to call more than once.
func (r *Reloader) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	close(r.stopChan)
	r.running = false
	r.logger.Info("config reloader stopped")
}

// IsRunning reports whether the poll goroutine is active.
func (r *Reloader) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

func (r *Reloader) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			return
		case <-ticker.C:
			r.check()
		}
	}
}

func (r *Reloader) check() {
	info, err := os.Stat(r.path)
	if err != nil {
		return
	}

	r.mu.RLock()
	seen := r.lastMod
	r.mu.RUnlock()
	if !info.ModTime().After(seen) {
		return
	}

	cfg, err := NewLoader().WithConfigPath(r.path).WithValidator((*Config).Validate).Load()
	if err != nil {
		r.logger.Warn("config reload failed, keeping previous configuration",
			zap.String("path", r.path), zap.Error(err))
		r.mu.Lock()
		r.lastMod = info.ModTime()
		r.mu.Unlock()
		return
	}

	r.mu.Lock()
	r.current = cfg
	r.lastMod = info.ModTime()
	callbacks := make([]func(*Config), len(r.callbacks))
	copy(callbacks, r.callbacks)
	r.mu.Unlock()

	r.logger.Info("configuration reloaded", zap.String("path", r.path))
	for _, cb := range callbacks {
		cb(cfg)
	}
}
