package websocket

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "gatewire"

// Frame kinds used as the "kind" label.
const (
	kindText   = "text"
	kindBinary = "binary"
	kindClose  = "close"
)

// Receive error types used as the "type" label.
const (
	errTypeDecode     = "decode"
	errTypeDecompress = "decompress"
	errTypeTransport  = "transport"
)

// Metrics holds the Prometheus counters of gateway traffic. One Metrics can
// be shared by any number of clients.
type Metrics struct {
	framesReceived *prometheus.CounterVec
	bytesReceived  *prometheus.CounterVec
	receiveErrors  *prometheus.CounterVec
	idleReceives   prometheus.Counter
	commandsSent   *prometheus.CounterVec
	bytesSent      prometheus.Counter
}

var defaultMetrics = sync.OnceValue(func() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer)
})

// NewMetrics creates the gateway counters and registers them on reg.
//
// Metrics collected:
//   - gatewire_gateway_frames_received_total: frames by kind (text, binary, close)
//   - gatewire_gateway_bytes_received_total: wire bytes by frame kind
//   - gatewire_gateway_receive_errors_total: receive failures by type
//   - gatewire_gateway_idle_receives_total: receive windows that ended empty
//   - gatewire_gateway_commands_sent_total: commands by opcode name
//   - gatewire_gateway_bytes_sent_total: encoded command bytes
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		framesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "gateway",
			Name:      "frames_received_total",
			Help:      "Total number of frames received from the gateway",
		}, []string{"kind"}),

		bytesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "gateway",
			Name:      "bytes_received_total",
			Help:      "Total number of frame payload bytes received, before inflation",
		}, []string{"kind"}),

		receiveErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "gateway",
			Name:      "receive_errors_total",
			Help:      "Total receive failures by type",
		}, []string{"type"}),

		idleReceives: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "gateway",
			Name:      "idle_receives_total",
			Help:      "Total receive calls that returned without a payload",
		}),

		commandsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "gateway",
			Name:      "commands_sent_total",
			Help:      "Total commands written to the gateway by opcode",
		}, []string{"op"}),

		bytesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "gateway",
			Name:      "bytes_sent_total",
			Help:      "Total encoded command bytes written to the gateway",
		}),
	}
}

func (m *Metrics) frame(kind string, size int) {
	m.framesReceived.WithLabelValues(kind).Inc()
	m.bytesReceived.WithLabelValues(kind).Add(float64(size))
}

func (m *Metrics) receiveError(errType string) {
	m.receiveErrors.WithLabelValues(errType).Inc()
}

func (m *Metrics) sent(op string, size int) {
	m.commandsSent.WithLabelValues(op).Inc()
	m.bytesSent.Add(float64(size))
}
