// Package interfaces 定义 MeshX 公共接口
//
// 本文件定义 EventBus 接口，即控制任务的发布/订阅通道。
package interfaces

import "github.com/meshx/go-meshx/pkg/types"

// EventBus 定义控制任务事件总线接口
//
// 订阅按 (消息码, 事件位图) 过滤；发布为 fire-and-forget。
type EventBus interface {
	// Subscribe 订阅指定消息码下与 mask 相交的事件
	Subscribe(code types.MsgCode, mask types.Event, opts ...SubscriptionOpt) (Subscription, error)

	// SubscribeFunc 订阅并在独立 goroutine 中逐条调用 handler
	SubscribeFunc(code types.MsgCode, mask types.Event, handler EventHandler, opts ...SubscriptionOpt) (Subscription, error)

	// Publish 发布事件，params 会被复制
	Publish(code types.MsgCode, evt types.Event, params []byte) error

	// Close 关闭总线并关闭所有订阅
	Close() error
}

// ControlMessage 控制任务消息
type ControlMessage struct {
	Code   types.MsgCode
	Event  types.Event
	Params []byte
}

// EventHandler 事件处理函数
type EventHandler func(msg ControlMessage) error

// Subscription 定义事件订阅接口
type Subscription interface {
	// Out 返回接收事件的通道
	Out() <-chan ControlMessage

	// Close 取消订阅
	Close() error
}

// SubscriptionOpt 订阅选项函数类型
type SubscriptionOpt func(*SubscriptionSettings)

// SubscriptionSettings 订阅设置（导出以供实现使用）
type SubscriptionSettings struct {
	Buffer int
}

// BufSize 设置订阅缓冲区大小
func BufSize(size int) SubscriptionOpt {
	return func(s *SubscriptionSettings) {
		s.Buffer = size
	}
}
