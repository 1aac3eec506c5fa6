package txcm

import (
	"github.com/google/uuid"

	"github.com/meshx/go-meshx/pkg/types"
)

// EntryInfo 投递条目快照
type EntryInfo struct {
	ID       uuid.UUID
	Dest     types.Address
	Kind     types.MsgKind
	State    types.MsgState
	Retry    int // 剩余重发次数
	Attempts int // 已调用 send 的次数
	Len      int // 载荷字节数
}

// DropReason 丢弃原因
type DropReason string

const (
	// DropQueueFull 待投递队列已满
	DropQueueFull DropReason = "queue_full"
	// DropAckMismatch ACK 与队首目的地址不匹配
	DropAckMismatch DropReason = "ack_mismatch"
	// DropAckEmpty ACK 到达时队列为空
	DropAckEmpty DropReason = "ack_empty"
	// DropClosed 关闭时仍未投递
	DropClosed DropReason = "closed"
)

// Observer TXCM 观察者
//
// OnSubmit 在 Submit 调用方的 goroutine 中调用，其余方法都在工作协程中同步调用，
// 实现不得阻塞，也不得回调 Manager 的同步等待方法。
type Observer interface {
	// OnSubmit 信号入队成功
	OnSubmit(kind types.SignalKind, dest types.Address)

	// OnSend 调用了一次 send 回调
	OnSend(info EntryInfo, err error)

	// OnAck 队首 ACKED 消息被确认
	OnAck(info EntryInfo)

	// OnTimeout 队首消息重试耗尽被丢弃
	OnTimeout(info EntryInfo)

	// OnComplete UNACKED 消息发送完成
	OnComplete(info EntryInfo)

	// OnDrop 信号或条目被丢弃
	OnDrop(reason DropReason, dest types.Address)
}

// NopObserver 空观察者，可嵌入以只实现关心的方法
type NopObserver struct{}

func (NopObserver) OnSubmit(types.SignalKind, types.Address) {}
func (NopObserver) OnSend(EntryInfo, error)                   {}
func (NopObserver) OnAck(EntryInfo)                           {}
func (NopObserver) OnTimeout(EntryInfo)                       {}
func (NopObserver) OnComplete(EntryInfo)                      {}
func (NopObserver) OnDrop(DropReason, types.Address)          {}

var _ Observer = NopObserver{}
