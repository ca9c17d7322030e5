package snip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/snip/internal/server"
	"golang.org/x/sync/errgroup"
)

// HTTP config.
const (
	// DefaultAddr is the default address the snippet server listens on.
	DefaultAddr = "localhost:7878"

	// DefaultTimeout is the default amount of time allowed for reading a whole
	// request or writing a whole response.
	DefaultTimeout = 30 * time.Second

	// DefaultHeaderTimeout is the default amount of time allowed for a client
	// to send the request headers.
	DefaultHeaderTimeout = 10 * time.Second

	// DefaultShutdownTimeout is the amount of time in-flight requests are given
	// to complete once the server is asked to stop.
	DefaultShutdownTimeout = 5 * time.Second

	idleTimeout    = 90 * time.Second
	maxHeaderBytes = 1 << 16
)

// ServeOptions are the options passed to the serve subcommand.
type ServeOptions struct {
	// Addr is the TCP address to listen on e.g. "localhost:7878".
	Addr string

	// Timeout is the read and write timeout for a single request.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool
}

// Validate reports whether the ServeOptions is valid, returning an error
// if it's not.
//
// nil means the options are valid.
func (o ServeOptions) Validate() error {
	switch {
	case o.Addr == "":
		return errors.New("addr cannot be empty")
	case o.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %s", o.Timeout)
	default:
		return nil
	}
}

// Serve implements the serve subcommand, it serves the snippet generation API
// until ctx is cancelled.
func (s Snip) Serve(ctx context.Context, options ServeOptions) error {
	if err := options.Validate(); err != nil {
		return err
	}

	logger := s.logger.Prefixed("serve").With(slog.String("addr", options.Addr))

	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", options.Addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", options.Addr, err)
	}

	srv := &http.Server{
		Handler:           server.New(s.registry, logger),
		ReadHeaderTimeout: min(DefaultHeaderTimeout, options.Timeout),
		ReadTimeout:       options.Timeout,
		WriteTimeout:      options.Timeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}

	fmt.Fprintf(s.stdout, "Serving snippets on %s\n", hue.Bold.Text("http://"+listener.Addr().String()))
	logger.Info("Server started", slog.String("version", s.version), slog.Int("targets", len(s.registry.Names())))

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-ctx.Done()

		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultShutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
