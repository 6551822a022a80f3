// Package socketio provides a Socket.IO client connection as a system
// component. Its lifecycle is genuinely asynchronous: Start resolves only
// when the server acknowledges the connection, via the engine's event
// callbacks rather than by blocking.
package socketio

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/leon-computer/alpha.component-async/component"
	"github.com/leon-computer/alpha.component-async/internal/ctxlog"
	"github.com/leon-computer/alpha.component-async/internal/registry"
)

// Settings are the manifest arguments for a socketio component.
type Settings struct {
	URL                string `hcl:"url"`
	Namespace          string `hcl:"namespace,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}

// Conn is the component. Before Start, IO is nil; after Start it holds the
// connected socket shared with dependents.
type Conn struct {
	name      string
	url       string
	namespace string
	insecure  bool
	deps      []component.Dependency

	manager *socket.Manager
	// IO is the live socket, available to dependents after Start.
	IO *socket.Socket
}

// New builds an unconnected Conn.
func New(name, rawURL, namespace string, insecure bool) *Conn {
	if namespace == "" {
		namespace = "/"
	}
	return &Conn{name: name, url: rawURL, namespace: namespace, insecure: insecure}
}

// Dependencies implements component.DependencyAware.
func (c *Conn) Dependencies() []component.Dependency { return c.deps }

// WithDependencies implements component.DependencyAware. The connection
// does not consume its dependencies' values; declaring them orders it
// after the targets.
func (c *Conn) WithDependencies(map[string]component.Component) component.Component {
	cp := *c
	return &cp
}

// StartAsync connects to the server. The connection outcome arrives on the
// engine's event loop; settled ensures the component resolves its callback
// pair at most once even if the engine later reports both a connect and a
// reconnect error.
func (c *Conn) StartAsync(ctx context.Context, done func(component.Component), fail func(error)) {
	logger := ctxlog.FromContext(ctx).With("component", c.name, "url", c.url, "namespace", c.namespace)

	parsed, err := url.Parse(c.url)
	if err != nil {
		fail(fmt.Errorf("parsing url: %w", err))
		return
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsed.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))
	if c.insecure {
		logger.Warn("skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(c.namespace, opts)

	var settled atomic.Bool
	io.On(types.EventName("connect"), func(...any) {
		if !settled.CompareAndSwap(false, true) {
			return
		}
		logger.Info("socket connected", "sid", io.Id())
		cp := *c
		cp.manager = manager
		cp.IO = io
		done(&cp)
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if !settled.CompareAndSwap(false, true) {
			return
		}
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				fail(fmt.Errorf("connecting to %s: %w", c.url, e))
				return
			}
		}
		fail(fmt.Errorf("connecting to %s failed", c.url))
	})

	logger.Debug("connecting socket")
	io.Connect()
}

// Stop disconnects the socket and drops the live handles.
func (c *Conn) Stop(ctx context.Context) (component.Component, error) {
	if c.IO != nil {
		ctxlog.FromContext(ctx).Debug("disconnecting socket", "component", c.name)
		c.IO.Disconnect()
	}
	cp := *c
	cp.IO = nil
	cp.manager = nil
	return &cp, nil
}

// Module registers the socketio component type.
type Module struct{}

// Register implements registry.Module.
func (m *Module) Register(r *registry.Registry) {
	r.Register("socketio", func(ctx context.Context, spec registry.Spec) (component.Component, error) {
		var settings Settings
		if spec.Settings == nil {
			return nil, fmt.Errorf("socketio %q: url is required", spec.Name)
		}
		if diags := gohcl.DecodeBody(spec.Settings, spec.EvalContext, &settings); diags.HasErrors() {
			return nil, fmt.Errorf("socketio %q: %w", spec.Name, diags)
		}
		c := New(spec.Name, settings.URL, settings.Namespace, settings.InsecureSkipVerify)
		c.deps = spec.Uses
		return c, nil
	})
}
