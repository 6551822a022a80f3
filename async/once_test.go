package async

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leon-computer/alpha.component-async/component"
)

func TestOnceGuardAcceptsSingleResolution(t *testing.T) {
	t.Run("done", func(t *testing.T) {
		var got component.Component
		g := newOnceGuard(OpStart, "a", "instance", component.NewSystem(),
			func(c component.Component) { got = c },
			func(error) { t.Fatal("fail must not be invoked") })

		g.Done("value")
		assert.Equal(t, "value", got)
	})

	t.Run("fail", func(t *testing.T) {
		boom := errors.New("boom")
		var got error
		g := newOnceGuard(OpStart, "a", "instance", component.NewSystem(),
			func(component.Component) { t.Fatal("done must not be invoked") },
			func(err error) { got = err })

		g.Fail(boom)
		assert.Equal(t, boom, got)
	})
}

func TestOnceGuardPanicsOnExcessiveResolution(t *testing.T) {
	cases := []struct {
		name   string
		first  func(*onceGuard)
		second func(*onceGuard)
	}{
		{"done twice", func(g *onceGuard) { g.Done(nil) }, func(g *onceGuard) { g.Done(nil) }},
		{"fail twice", func(g *onceGuard) { g.Fail(errors.New("x")) }, func(g *onceGuard) { g.Fail(errors.New("y")) }},
		{"done then fail", func(g *onceGuard) { g.Done(nil) }, func(g *onceGuard) { g.Fail(errors.New("x")) }},
		{"fail then done", func(g *onceGuard) { g.Fail(errors.New("x")) }, func(g *onceGuard) { g.Done(nil) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			instance := "db instance"
			sys := component.NewSystem().With("db", instance)
			g := newOnceGuard(OpStop, "db", instance, sys, func(component.Component) {}, func(error) {})
			tc.first(g)

			defer func() {
				r := recover()
				require.NotNil(t, r, "second resolution must panic")
				violation, ok := r.(*ResolutionViolationError)
				require.True(t, ok, "panic value must be *ResolutionViolationError, got %T", r)
				assert.Equal(t, "db", violation.Name)
				assert.Equal(t, OpStop, violation.Op)
				assert.Equal(t, 2, violation.Calls)
				assert.Equal(t, instance, violation.Component)
				assert.Equal(t, []string{"db"}, violation.System.Names())
			}()
			tc.second(g)
		})
	}
}
