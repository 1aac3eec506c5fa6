// Package txcm 实现发送控制模块（Transmission Control Module）
//
// TXCM 位于各模型客户端与底层发送原语之间，负责：
//   - 串行化出站消息，同一时刻至多一条消息处于发送中或等待确认
//   - 按提交顺序（FIFO）服务待投递队列
//   - 跟踪 ACK 状态，由外部 RESEND 信号驱动有界重试
//   - 重试耗尽时在事件总线上发布一次 TIMEOUT 事件
//
// # 架构
//
//	生产者 ── Submit ──> 信号队列 ──> 工作协程 ──> 待投递队列
//	                                    │
//	                                    ├─ send(params)
//	                                    └─ EventBus.Publish(TXCM, TIMEOUT)
//
// 生产者只向信号队列入队；待投递队列只由工作协程访问，因此不需要加锁。
//
// # 信号
//
//   - ENQ_SEND：入队需要确认的消息
//   - DIRECT_SEND：入队发送即完成的消息
//   - RESEND：强制重发队首消息，重试耗尽则发布 TIMEOUT
//   - ACK：确认队首消息
//
// # 载荷所有权
//
// Submit 为载荷制作私有副本，随信号移交给工作协程，
// 在 ACK、UNACKED 发送完成或重试耗尽时由工作协程释放且仅释放一次。
//
// # 使用示例
//
//	mgr, _ := txcm.New(txcm.DefaultConfig(), bus)
//	_ = mgr.Init(ctx)
//	defer mgr.Close()
//
//	_ = mgr.EnqueueSend(0x0005, params, sendFn)
//	_ = mgr.Ack(0x0005)
package txcm
