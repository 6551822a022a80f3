// Package httpclient provides a shared *http.Client as a system component
// with a synchronous lifecycle. Other components depend on it to reuse
// pooled connections.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/leon-computer/alpha.component-async/component"
	"github.com/leon-computer/alpha.component-async/internal/ctxlog"
	"github.com/leon-computer/alpha.component-async/internal/registry"
)

const defaultTimeout = 30 * time.Second

// Settings are the manifest arguments for an httpclient component.
type Settings struct {
	Timeout string `hcl:"timeout,optional"`
}

// Client is the component. Before Start, HTTP is nil; Start returns a copy
// holding a configured live client.
type Client struct {
	name    string
	timeout time.Duration
	deps    []component.Dependency

	// HTTP is the live client, available to dependents after Start.
	HTTP *http.Client
}

// New builds an unstarted Client.
func New(name string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{name: name, timeout: timeout}
}

// Dependencies implements component.DependencyAware.
func (c *Client) Dependencies() []component.Dependency { return c.deps }

// WithDependencies implements component.DependencyAware. The client does
// not consume its dependencies' values; declaring them orders it after
// the targets.
func (c *Client) WithDependencies(map[string]component.Component) component.Component {
	cp := *c
	return &cp
}

// Start builds the pooled HTTP client.
func (c *Client) Start(ctx context.Context) (component.Component, error) {
	ctxlog.FromContext(ctx).Debug("creating http client", "component", c.name, "timeout", c.timeout)

	cp := *c
	cp.HTTP = &http.Client{
		Timeout: c.timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	return &cp, nil
}

// Stop releases idle connections and drops the live client.
func (c *Client) Stop(ctx context.Context) (component.Component, error) {
	if c.HTTP != nil {
		c.HTTP.CloseIdleConnections()
	}
	cp := *c
	cp.HTTP = nil
	return &cp, nil
}

// Module registers the httpclient component type.
type Module struct{}

// Register implements registry.Module.
func (m *Module) Register(r *registry.Registry) {
	r.Register("httpclient", func(ctx context.Context, spec registry.Spec) (component.Component, error) {
		var settings Settings
		if spec.Settings != nil {
			if diags := gohcl.DecodeBody(spec.Settings, spec.EvalContext, &settings); diags.HasErrors() {
				return nil, fmt.Errorf("httpclient %q: %w", spec.Name, diags)
			}
		}
		timeout := defaultTimeout
		if settings.Timeout != "" {
			parsed, err := time.ParseDuration(settings.Timeout)
			if err != nil {
				return nil, fmt.Errorf("httpclient %q: invalid timeout: %w", spec.Name, err)
			}
			timeout = parsed
		}
		c := New(spec.Name, timeout)
		c.deps = spec.Uses
		return c, nil
	})
}
