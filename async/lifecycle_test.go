package async

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leon-computer/alpha.component-async/component"
)

func TestStartWaitReturnsOnContextCancellation(t *testing.T) {
	p := &probe{}
	gate := make(chan struct{})
	defer close(gate)
	sys := component.NewSystem().
		With("slow", &asyncComp{name: "slow", probe: p, gate: gate})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := StartWait(ctx, sys)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStartNeverBlocksCaller(t *testing.T) {
	p := &probe{}
	gate := make(chan struct{})
	defer close(gate)
	sys := component.NewSystem().
		With("slow", &asyncComp{name: "slow", probe: p, gate: gate})

	returned := make(chan struct{})
	go func() {
		Start(context.Background(), sys, nil, func(component.System) {}, func(error) {})
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Start blocked on an in-flight component operation")
	}
}

func TestEmptySystem(t *testing.T) {
	started, err := StartWait(context.Background(), component.NewSystem())
	require.NoError(t, err)
	assert.Zero(t, started.Len())
}
