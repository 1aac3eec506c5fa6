// Package retransmit 实现 ACK 超时重发定时器
//
// TXCM 本身不检测"发送后多久没有收到 ACK"，该职责由外部定时器承担。
// Guard 作为 txcm.Observer 注册到 Manager：
//
//   - ACKED 消息每次发送（OnSend）后启动 AckTimeout 定时器
//   - 收到确认（OnAck）或重试耗尽（OnTimeout）时撤销定时器
//   - 定时器到期时向 TXCM 提交 RESEND 信号
//
// 同一时刻至多一条消息在途，因此 Guard 只维护一个定时器。
// 每次布防递增代数，过期的定时器回调会被丢弃。
package retransmit
