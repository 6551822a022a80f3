package async

import (
	"context"
	"slices"
	"sync"

	"github.com/leon-computer/alpha.component-async/component"
)

// probe is a concurrency-safe event log shared by test components.
type probe struct {
	mu     sync.Mutex
	events []string
}

func (p *probe) record(ev string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *probe) log() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.events)
}

func (p *probe) count(ev string) int {
	n := 0
	for _, e := range p.log() {
		if e == ev {
			n++
		}
	}
	return n
}

// indexOf returns the position of ev in the log, or -1.
func (p *probe) indexOf(ev string) int {
	return slices.Index(p.log(), ev)
}

// syncComp implements the synchronous lifecycle capability.
type syncComp struct {
	name     string
	probe    *probe
	deps     []component.Dependency
	injected map[string]component.Component
	startErr error
	stopErr  error
	started  bool
	stopped  bool
}

func (c *syncComp) Dependencies() []component.Dependency { return c.deps }

func (c *syncComp) WithDependencies(deps map[string]component.Component) component.Component {
	cp := *c
	cp.injected = deps
	return &cp
}

func (c *syncComp) Start(ctx context.Context) (component.Component, error) {
	if c.startErr != nil {
		c.probe.record("fail:" + c.name)
		return nil, c.startErr
	}
	c.probe.record("start:" + c.name)
	cp := *c
	cp.started = true
	return &cp, nil
}

func (c *syncComp) Stop(ctx context.Context) (component.Component, error) {
	if c.stopErr != nil {
		c.probe.record("fail:" + c.name)
		return nil, c.stopErr
	}
	c.probe.record("stop:" + c.name)
	cp := *c
	cp.stopped = true
	return &cp, nil
}

// asyncComp implements the asynchronous lifecycle capability. When gate is
// non-nil the completion callback is held back until the gate closes, which
// lets tests observe concurrently dispatched operations.
type asyncComp struct {
	name     string
	probe    *probe
	deps     []component.Dependency
	injected map[string]component.Component
	gate     chan struct{}
	startErr error
	stopErr  error
	started  bool
	stopped  bool
}

func (c *asyncComp) Dependencies() []component.Dependency { return c.deps }

func (c *asyncComp) WithDependencies(deps map[string]component.Component) component.Component {
	cp := *c
	cp.injected = deps
	return &cp
}

func (c *asyncComp) StartAsync(ctx context.Context, done func(component.Component), fail func(error)) {
	c.probe.record("dispatch:" + c.name)
	go func() {
		if c.gate != nil {
			<-c.gate
		}
		if c.startErr != nil {
			c.probe.record("fail:" + c.name)
			fail(c.startErr)
			return
		}
		c.probe.record("start:" + c.name)
		cp := *c
		cp.started = true
		done(&cp)
	}()
}

func (c *asyncComp) StopAsync(ctx context.Context, done func(component.Component), fail func(error)) {
	c.probe.record("dispatch:" + c.name)
	go func() {
		if c.gate != nil {
			<-c.gate
		}
		if c.stopErr != nil {
			c.probe.record("fail:" + c.name)
			fail(c.stopErr)
			return
		}
		c.probe.record("stop:" + c.name)
		cp := *c
		cp.stopped = true
		done(&cp)
	}()
}

// dep declares a dependency whose alias matches its system key.
func dep(key string) component.Dependency {
	return component.Dependency{As: key, Key: key}
}
