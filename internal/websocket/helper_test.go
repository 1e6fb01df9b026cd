package websocket

import (
	"bytes"
	"compress/zlib"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luciancaetano/gatewire/internal/protocol"
)

// fakeGateway is a gorilla server that runs a script on each connection,
// then reads until the connection fails.
type fakeGateway struct {
	srv      *httptest.Server
	received chan []byte
	closed   chan *websocket.CloseError
}

func newFakeGateway(t *testing.T, script func(conn *websocket.Conn)) *fakeGateway {
	t.Helper()

	g := &fakeGateway{
		received: make(chan []byte, 64),
		closed:   make(chan *websocket.CloseError, 1),
	}

	upgrader := websocket.Upgrader{}
	g.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		if script != nil {
			script(conn)
		}

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				var closeErr *websocket.CloseError
				if errors.As(err, &closeErr) {
					select {
					case g.closed <- closeErr:
					default:
					}
				}
				return
			}
			g.received <- data
		}
	}))
	t.Cleanup(g.srv.Close)

	return g
}

func (g *fakeGateway) url() string {
	return "ws" + strings.TrimPrefix(g.srv.URL, "http")
}

// next returns the next text frame the gateway received
func (g *fakeGateway) next(t *testing.T) []byte {
	t.Helper()

	select {
	case data := <-g.received:
		return data
	case <-time.After(5 * time.Second):
		t.Fatal("gateway received nothing")
		return nil
	}
}

func testConfig(g *fakeGateway) *Config {
	return &Config{
		URL:             g.url(),
		Shard:           protocol.ShardInfo{ID: 1, Total: 4},
		RateLimitConfig: NoRateLimit(),
		Logger:          slog.New(slog.DiscardHandler),
		Metrics:         NewMetrics(prometheus.NewRegistry()),
	}
}

func dial(t *testing.T, cfg *Config) *Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() {
		client.Close(context.Background())
	})
	return client
}

// receive calls Receive until a payload or an error arrives
func receive(t *testing.T, c *Client) (protocol.Envelope, error) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		env, ok, err := c.Receive(context.Background())
		if err != nil || ok {
			return env, err
		}
	}
	t.Fatal("no payload received")
	return protocol.Envelope{}, nil
}

func deflate(t *testing.T, data []byte, syncFlush bool) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("zlib Write() error = %v", err)
	}
	var err error
	if syncFlush {
		err = zw.Flush()
	} else {
		err = zw.Close()
	}
	if err != nil {
		t.Fatalf("zlib finish error = %v", err)
	}
	return buf.Bytes()
}

// counterValue reads one counter from a registry, zero if absent
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}
