// Package channel 实现有界阻塞双端消息队列
//
// Channel 是 TXCM 信号队列与待投递队列的底层原语，提供：
//   - PushBack / PushFront：尾部 / 头部入队
//   - Pop：破坏性出队
//   - Peek：非破坏性查看队首
//
// 每个操作都带超时参数：
//   - 0：不阻塞，立即返回 ErrFull / ErrEmpty
//   - >0：最多等待指定时长，超时返回 ErrTimeout
//   - Forever：无限等待，直到成功或 Close
//
// # 并发安全
//
// 支持多生产者、多消费者。等待者通过广播通道唤醒，每次状态变化
// 都会关闭旧的通知通道并创建新的通道。
package channel
