// Package wsfeed provides a websocket subscription as a system component.
// Start dials in the background and resolves once the connection is up; a
// reader goroutine then drains incoming frames until Stop closes the
// connection and joins it.
package wsfeed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/leon-computer/alpha.component-async/component"
	"github.com/leon-computer/alpha.component-async/internal/ctxlog"
	"github.com/leon-computer/alpha.component-async/internal/registry"
)

// Settings are the manifest arguments for a wsfeed component.
type Settings struct {
	URL string `hcl:"url"`
}

// Feed is the component.
type Feed struct {
	name string
	url  string
	deps []component.Dependency

	conn *websocket.Conn
	// closed is closed by the reader goroutine when it exits.
	closed chan struct{}
}

// New builds an undialed Feed.
func New(name, url string) *Feed {
	return &Feed{name: name, url: url}
}

// Dependencies implements component.DependencyAware.
func (f *Feed) Dependencies() []component.Dependency { return f.deps }

// WithDependencies implements component.DependencyAware. The feed does not
// consume its dependencies' values; declaring them orders it after the
// targets.
func (f *Feed) WithDependencies(map[string]component.Component) component.Component {
	cp := *f
	return &cp
}

// StartAsync dials the feed without blocking the caller and resolves the
// callback pair from the dialing goroutine.
func (f *Feed) StartAsync(ctx context.Context, done func(component.Component), fail func(error)) {
	logger := ctxlog.FromContext(ctx).With("component", f.name, "url", f.url)
	go func() {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.url, nil)
		if err != nil {
			fail(fmt.Errorf("dialing %s: %w", f.url, err))
			return
		}
		logger.Debug("feed connected")

		cp := *f
		cp.conn = conn
		cp.closed = make(chan struct{})
		started := &cp
		go started.pump(logger)
		done(started)
	}()
}

// pump drains the connection until it closes.
func (f *Feed) pump(logger *slog.Logger) {
	defer close(f.closed)
	for {
		_, message, err := f.conn.ReadMessage()
		if err != nil {
			logger.Debug("feed reader exiting", "reason", err)
			return
		}
		logger.Debug("frame received", "bytes", len(message))
	}
}

// Stop closes the connection and waits for the reader goroutine to exit.
func (f *Feed) Stop(ctx context.Context) (component.Component, error) {
	if f.conn == nil {
		cp := *f
		return &cp, nil
	}

	deadline := time.Now().Add(time.Second)
	_ = f.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	_ = f.conn.Close()

	select {
	case <-f.closed:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	cp := *f
	cp.conn = nil
	cp.closed = nil
	return &cp, nil
}

// Module registers the wsfeed component type.
type Module struct{}

// Register implements registry.Module.
func (m *Module) Register(r *registry.Registry) {
	r.Register("wsfeed", func(ctx context.Context, spec registry.Spec) (component.Component, error) {
		var settings Settings
		if spec.Settings == nil {
			return nil, fmt.Errorf("wsfeed %q: url is required", spec.Name)
		}
		if diags := gohcl.DecodeBody(spec.Settings, spec.EvalContext, &settings); diags.HasErrors() {
			return nil, fmt.Errorf("wsfeed %q: %w", spec.Name, diags)
		}
		f := New(spec.Name, settings.URL)
		f.deps = spec.Uses
		return f, nil
	})
}
