package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/c360/dxdmcp/errors"
	"github.com/c360/dxdmcp/metric"
)

// Diagnostics serves health and metrics endpoints on a side port so
// operators can probe the process while the MCP stream owns stdio.
type Diagnostics struct {
	bindAddress string
	metrics     *metric.Metrics
	logger      *slog.Logger
	httpServer  *http.Server
	mux         *http.ServeMux

	// Lifecycle
	running  bool
	mu       sync.RWMutex
	stopChan chan struct{}
	stopOnce sync.Once // Ensures stopChan is closed exactly once
}

// NewDiagnostics creates a diagnostics server bound to the given address.
func NewDiagnostics(bindAddress string, metrics *metric.Metrics, logger *slog.Logger) (*Diagnostics, error) {
	if bindAddress == "" {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "Diagnostics", "NewDiagnostics",
			"bind address is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Diagnostics{
		bindAddress: bindAddress,
		metrics:     metrics,
		logger:      logger,
		mux:         http.NewServeMux(),
		stopChan:    make(chan struct{}),
	}, nil
}

// Setup configures the HTTP server and routes
func (d *Diagnostics) Setup() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.mux.HandleFunc("/health", d.handleHealth)
	if d.metrics != nil {
		d.mux.Handle("/metrics", d.metrics.Handler())
	}

	d.httpServer = &http.Server{
		Addr:         d.bindAddress,
		Handler:      d.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	d.logger.Info("Diagnostics server configured", "address", d.bindAddress)

	return nil
}

// Start starts the HTTP server
// The ready channel is closed when the server is ready to accept connections
func (d *Diagnostics) Start(ctx context.Context, ready chan<- struct{}) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return errors.WrapFatal(errors.ErrAlreadyStarted, "Diagnostics", "Start", "server already running")
	}
	d.running = true
	server := d.httpServer
	d.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		defer close(errChan) // Signal goroutine exit
		d.logger.Info("Diagnostics server starting", "address", d.bindAddress)

		// ListenAndServe blocks after binding the socket, so signal
		// ready immediately before the call
		if ready != nil {
			close(ready)
		}

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			d.logger.Error("Diagnostics server error", "error", err)
			// Non-blocking send - ensures goroutine doesn't leak if select is on another case
			select {
			case errChan <- err:
			case <-ctx.Done():
			case <-d.stopChan:
			}
		}
	}()

	select {
	case <-ctx.Done():
		d.logger.Info("Diagnostics context cancelled, shutting down")
		return d.Stop(30 * time.Second)

	case <-d.stopChan:
		d.logger.Info("Diagnostics stop requested")
		return nil

	case err := <-errChan:
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
		return errors.WrapFatal(err, "Diagnostics", "Start", "HTTP server failed")
	}
}

// Stop gracefully shuts down the HTTP server
func (d *Diagnostics) Stop(timeout time.Duration) error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil // Already stopped
	}
	server := d.httpServer
	d.mu.Unlock()

	d.logger.Info("Diagnostics server stopping")

	// Signal stop channel (idempotent - safe to call multiple times)
	d.stopOnce.Do(func() {
		close(d.stopChan)
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		d.logger.Error("Failed to shutdown diagnostics server gracefully", "error", err)
		return errors.WrapTransient(err, "Diagnostics", "Stop", "graceful shutdown failed")
	}

	d.mu.Lock()
	d.running = false
	d.mu.Unlock()

	d.logger.Info("Diagnostics server stopped")
	return nil
}

// handleHealth handles health check requests
func (d *Diagnostics) handleHealth(w http.ResponseWriter, _ *http.Request) {
	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()

	if !running {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
