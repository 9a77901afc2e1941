// Package metrics exports channel and command assembly measurements to
// Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for frame handling. It implements
// channel.MetricsCollector. A nil *Collector records nothing.
type Collector struct {
	// Inbound metrics
	FramesReceived    *prometheus.CounterVec
	CommandsAssembled *prometheus.CounterVec
	BodyBytesReceived prometheus.Counter
	AssemblyErrors    *prometheus.CounterVec

	// Outbound metrics
	MethodsSent   *prometheus.CounterVec
	BodyBytesSent prometheus.Counter

	// Delivery metrics
	UnackedDeliveries *prometheus.GaugeVec
}

// NewCollector creates a collector registered with reg. A nil reg uses the
// default Prometheus registry.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	if namespace == "" {
		namespace = "amqp_client"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		FramesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_received_total",
			Help:      "Total number of frames received, by frame kind",
		}, []string{"kind"}),
		CommandsAssembled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_assembled_total",
			Help:      "Total number of commands assembled, by method",
		}, []string{"method"}),
		BodyBytesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "body_bytes_received_total",
			Help:      "Total content body bytes in assembled commands",
		}),
		AssemblyErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assembly_errors_total",
			Help:      "Total number of frames rejected by the assembler, by reason",
		}, []string{"reason"}),

		MethodsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "methods_sent_total",
			Help:      "Total number of methods sent, by method",
		}, []string{"method"}),
		BodyBytesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "body_bytes_sent_total",
			Help:      "Total content body bytes sent",
		}),

		UnackedDeliveries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unacked_deliveries",
			Help:      "Deliveries received but not yet acknowledged, by channel",
		}, []string{"channel"}),
	}
}

// RecordFrameReceived counts an inbound frame
func (c *Collector) RecordFrameReceived(kind string) {
	if c == nil {
		return
	}
	c.FramesReceived.WithLabelValues(kind).Inc()
}

// RecordCommandAssembled counts a completed command and its body bytes
func (c *Collector) RecordCommandAssembled(method string, bodySize int) {
	if c == nil {
		return
	}
	c.CommandsAssembled.WithLabelValues(method).Inc()
	c.BodyBytesReceived.Add(float64(bodySize))
}

// RecordMethodSent counts an outbound method and its body bytes
func (c *Collector) RecordMethodSent(method string, bodySize int) {
	if c == nil {
		return
	}
	c.MethodsSent.WithLabelValues(method).Inc()
	c.BodyBytesSent.Add(float64(bodySize))
}

// RecordAssemblyError counts a rejected frame
func (c *Collector) RecordAssemblyError(reason string) {
	if c == nil {
		return
	}
	c.AssemblyErrors.WithLabelValues(reason).Inc()
}

// SetUnackedDeliveries updates the outstanding delivery gauge for a channel
func (c *Collector) SetUnackedDeliveries(channelID uint16, count uint64) {
	if c == nil {
		return
	}
	c.UnackedDeliveries.WithLabelValues(strconv.Itoa(int(channelID))).Set(float64(count))
}

// DeleteChannelMetrics removes per-channel series once a channel is gone
func (c *Collector) DeleteChannelMetrics(channelID uint16) {
	if c == nil {
		return
	}
	c.UnackedDeliveries.DeleteLabelValues(strconv.Itoa(int(channelID)))
}
