package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/meshx/go-meshx/internal/core/txcm"
	"github.com/meshx/go-meshx/pkg/types"
)

const subsystem = "txcm"

// Collector TXCM 指标收集器
type Collector struct {
	submitted *prometheus.CounterVec
	sends     *prometheus.CounterVec
	acks      prometheus.Counter
	timeouts  prometheus.Counter
	completed prometheus.Counter
	dropped   *prometheus.CounterVec
	inFlight  prometheus.Gauge
	attempts  prometheus.Histogram

	registry *prometheus.Registry

	// 快照计数
	nSubmitted atomic.Int64
	nSends     atomic.Int64
	nSendErrs  atomic.Int64
	nAcks      atomic.Int64
	nTimeouts  atomic.Int64
	nCompleted atomic.Int64
	nDropped   atomic.Int64
	nInFlight  atomic.Int64
}

var _ txcm.Observer = (*Collector)(nil)

// NewCollector 创建收集器
func NewCollector(namespace string) *Collector {
	return &Collector{
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "submitted_total",
			Help:      "Signals accepted into the signal queue.",
		}, []string{"signal"}),
		sends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sends_total",
			Help:      "Send callback invocations.",
		}, []string{"kind", "result"}),
		acks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "acks_total",
			Help:      "Acknowledged messages.",
		}),
		timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "timeouts_total",
			Help:      "Messages dropped after exhausting their retry budget.",
		}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "completed_total",
			Help:      "Unacknowledged messages completed after a single send.",
		}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "dropped_total",
			Help:      "Signals or entries dropped without delivery.",
		}, []string{"reason"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "in_flight",
			Help:      "Messages currently awaiting acknowledgment.",
		}),
		attempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "attempts",
			Help:      "Send attempts per acknowledged or timed out message.",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 16},
		}),
	}
}

// Register 注册所有指标
func (c *Collector) Register(reg prometheus.Registerer) error {
	var err error
	for _, col := range c.collectors() {
		err = multierr.Append(err, reg.Register(col))
	}
	return err
}

// Unregister 注销所有指标
func (c *Collector) Unregister(reg prometheus.Registerer) {
	for _, col := range c.collectors() {
		reg.Unregister(col)
	}
}

// Gatherer 返回私有 Registry（未使用私有 Registry 时为 nil）
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c.registry == nil {
		return nil
	}
	return c.registry
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.submitted,
		c.sends,
		c.acks,
		c.timeouts,
		c.completed,
		c.dropped,
		c.inFlight,
		c.attempts,
	}
}

// ============================================================================
//                              Observer 实现
// ============================================================================

// OnSubmit 记录入队信号
func (c *Collector) OnSubmit(kind types.SignalKind, _ types.Address) {
	c.submitted.WithLabelValues(kind.String()).Inc()
	c.nSubmitted.Add(1)
}

// OnSend 记录 send 回调
func (c *Collector) OnSend(info txcm.EntryInfo, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		c.nSendErrs.Add(1)
	}
	c.sends.WithLabelValues(info.Kind.String(), result).Inc()
	c.nSends.Add(1)

	if info.Kind == types.MsgAcked {
		c.setInFlight(1)
	}
}

// OnAck 记录确认
func (c *Collector) OnAck(info txcm.EntryInfo) {
	c.acks.Inc()
	c.nAcks.Add(1)
	c.attempts.Observe(float64(info.Attempts))
	c.setInFlight(0)
}

// OnTimeout 记录重试耗尽
func (c *Collector) OnTimeout(info txcm.EntryInfo) {
	c.timeouts.Inc()
	c.nTimeouts.Add(1)
	c.attempts.Observe(float64(info.Attempts))
	c.setInFlight(0)
}

// OnComplete 记录 UNACKED 完成
func (c *Collector) OnComplete(txcm.EntryInfo) {
	c.completed.Inc()
	c.nCompleted.Add(1)
}

// OnDrop 记录丢弃
func (c *Collector) OnDrop(reason txcm.DropReason, _ types.Address) {
	c.dropped.WithLabelValues(string(reason)).Inc()
	c.nDropped.Add(1)
	if reason == txcm.DropClosed {
		c.setInFlight(0)
	}
}

func (c *Collector) setInFlight(n int64) {
	c.inFlight.Set(float64(n))
	c.nInFlight.Store(n)
}

// ============================================================================
//                              快照
// ============================================================================

// Stats 指标快照
type Stats struct {
	Submitted  int64
	Sends      int64
	SendErrors int64
	Acks       int64
	Timeouts   int64
	Completed  int64
	Dropped    int64
	InFlight   int64
}

// Snapshot 返回指标快照
func (c *Collector) Snapshot() Stats {
	return Stats{
		Submitted:  c.nSubmitted.Load(),
		Sends:      c.nSends.Load(),
		SendErrors: c.nSendErrs.Load(),
		Acks:       c.nAcks.Load(),
		Timeouts:   c.nTimeouts.Load(),
		Completed:  c.nCompleted.Load(),
		Dropped:    c.nDropped.Load(),
		InFlight:   c.nInFlight.Load(),
	}
}
