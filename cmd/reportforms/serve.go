package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-reportforms/pkg/editor"
	"github.com/goliatone/go-reportforms/pkg/server"
)

func cmdServe(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(a.env.stderr)
	var (
		addr  = fs.String("addr", a.cfg.Addr, "HTTP listen address")
		grace = fs.Duration("grace", 5*time.Second, "shutdown grace period")
	)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err := wantArgs(fs.Args(), 0, 0, "no arguments"); err != nil {
		return err
	}

	ed, err := a.session(ctx, editor.WithAutoRefresh(true))
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	pattern, err := server.RegisterRoutes(mux, ed,
		server.WithBasePath(a.cfg.PagePath),
		server.WithTheme(a.cfg.Palette, a.cfg.PaletteVariant),
		server.WithLogger(a.log),
	)
	if err != nil {
		return err
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.log.Info("listening", zap.String("addr", *addr), zap.String("path", pattern))

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *grace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("shutdown", zap.Error(err))
	}
	return nil
}
