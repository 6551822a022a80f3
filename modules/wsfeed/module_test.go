package wsfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leon-computer/alpha.component-async/component"
	"github.com/leon-computer/alpha.component-async/internal/registry"
)

// echoServer upgrades incoming connections and drains them until closed.
func echoServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestStartAsyncAndStop(t *testing.T) {
	srv := echoServer(t)

	feed := New("ticker", wsURL(srv))
	resolved := make(chan component.Component, 1)
	failed := make(chan error, 1)
	feed.StartAsync(context.Background(),
		func(c component.Component) { resolved <- c },
		func(err error) { failed <- err })

	var started *Feed
	select {
	case c := <-resolved:
		started = c.(*Feed)
	case err := <-failed:
		t.Fatalf("start failed: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("start did not resolve")
	}
	require.NotNil(t, started.conn)
	assert.Nil(t, feed.conn, "StartAsync must not mutate the undialed component")

	stopped, err := started.Stop(context.Background())
	require.NoError(t, err)
	assert.Nil(t, stopped.(*Feed).conn)
}

func TestStartAsyncFailure(t *testing.T) {
	srv := echoServer(t)
	url := wsURL(srv)
	srv.Close()

	feed := New("ticker", url)
	failed := make(chan error, 1)
	feed.StartAsync(context.Background(),
		func(component.Component) { t.Error("done must not fire on a dead server") },
		func(err error) { failed <- err })

	select {
	case err := <-failed:
		assert.ErrorContains(t, err, "dialing")
	case <-time.After(5 * time.Second):
		t.Fatal("failure did not resolve")
	}
}

func TestFactoryCarriesWiring(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)
	factory, ok := r.Factory("wsfeed")
	require.True(t, ok)

	file, diags := hclparse.NewParser().ParseHCL([]byte(`url = "ws://example.com"`), "test.hcl")
	require.False(t, diags.HasErrors())

	uses := []component.Dependency{{As: "client", Key: "api"}}
	c, err := factory(context.Background(), registry.Spec{Name: "ticker", Settings: file.Body, Uses: uses})
	require.NoError(t, err)
	assert.Equal(t, uses, c.(*Feed).Dependencies())
}

func TestStopBeforeStartIsANoOp(t *testing.T) {
	feed := New("ticker", "ws://unused")
	stopped, err := feed.Stop(context.Background())
	require.NoError(t, err)
	assert.Nil(t, stopped.(*Feed).conn)
}
