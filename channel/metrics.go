package channel

// MetricsCollector receives channel level measurements. The metrics package
// provides a Prometheus implementation.
type MetricsCollector interface {
	RecordFrameReceived(kind string)
	RecordCommandAssembled(method string, bodySize int)
	RecordMethodSent(method string, bodySize int)
	RecordAssemblyError(reason string)
	SetUnackedDeliveries(channelID uint16, count uint64)
	DeleteChannelMetrics(channelID uint16)
}

// NoOpMetricsCollector is a metrics collector that does nothing
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) RecordFrameReceived(kind string)                     {}
func (n *NoOpMetricsCollector) RecordCommandAssembled(method string, bodySize int)  {}
func (n *NoOpMetricsCollector) RecordMethodSent(method string, bodySize int)        {}
func (n *NoOpMetricsCollector) RecordAssemblyError(reason string)                   {}
func (n *NoOpMetricsCollector) SetUnackedDeliveries(channelID uint16, count uint64) {}
func (n *NoOpMetricsCollector) DeleteChannelMetrics(channelID uint16)               {}
