// Package metrics 提供 TXCM 监控指标收集
//
// Collector 实现 txcm.Observer，把发送控制模块的事件转为 Prometheus 指标：
//
//	meshx_txcm_submitted_total{signal}   入队成功的信号数
//	meshx_txcm_sends_total{kind,result}  send 回调调用次数
//	meshx_txcm_acks_total                确认的消息数
//	meshx_txcm_timeouts_total            重试耗尽的消息数
//	meshx_txcm_completed_total           完成的 UNACKED 消息数
//	meshx_txcm_dropped_total{reason}     丢弃的信号或条目数
//	meshx_txcm_in_flight                 当前在途消息数（0 或 1）
//	meshx_txcm_attempts                  每条 ACKED 消息最终的发送次数
//
// # 快速开始
//
//	c := metrics.NewCollector("meshx")
//	_ = c.Register(prometheus.DefaultRegisterer)
//	mgr, _ := txcm.New(cfg, bus, txcm.WithObservers(c))
//
//	// 获取快照
//	s := c.Snapshot()
//	fmt.Printf("acks=%d timeouts=%d\n", s.Acks, s.Timeouts)
//
// # Fx 模块
//
// Module 把 Collector 注入 txcm_observers 值组。未提供 prometheus.Registerer 时
// 使用私有 Registry，可通过 Collector.Gatherer() 读取。
//
// # 并发安全
//
// Prometheus 指标与快照计数器都是并发安全的；OnSubmit 在生产者 goroutine 中调用，
// 其余回调在 TXCM 工作协程中调用。
package metrics
