package txcm

import (
	"errors"

	"github.com/meshx/go-meshx/internal/core/channel"
	"github.com/meshx/go-meshx/pkg/types"
)

// ============================================================================
//                              队首服务
// ============================================================================

// tryServiceHead 尝试发送待投递队列队首
//
// force 为 false 时只发送 NEW 状态的队首，保证同一时刻至多一条消息在途。
// 队首已发送过时每次重发消耗一次重试预算；预算为 0 时条目被丢弃（状态 NACK，
// 载荷已释放）并作为 dropped 返回，由调用方发布 TIMEOUT。
// UNACKED 消息发送后立即释放，随后继续服务新的队首。
func (m *Manager) tryServiceHead(force bool) (dropped *entry, err error) {
	for {
		head, err := m.txQ.Peek(0)
		if errors.Is(err, channel.ErrEmpty) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		if !force && head.state != types.MsgStateNew {
			return nil, nil
		}

		if _, err := m.txQ.Pop(0); err != nil {
			return nil, err
		}

		if head.state != types.MsgStateNew && m.cfg.MaxRetry != UnlimitedRetry {
			if head.retry <= 0 {
				head.state = types.MsgStateNack
				head.payload.Free()
				return head, nil
			}
			head.retry--
		}

		sendErr := m.send(head)

		if head.kind == types.MsgAcked {
			head.state = types.MsgStateWaitingAck
			info := head.info()
			m.notify(func(o Observer) { o.OnSend(info, sendErr) })

			if err := m.txQ.PushFront(head, 0); err != nil {
				head.payload.Free()
				m.notify(func(o Observer) { o.OnDrop(DropQueueFull, head.dest) })
				return nil, err
			}
			return nil, nil
		}

		info := head.info()
		head.payload.Free()
		m.notify(func(o Observer) { o.OnSend(info, sendErr) })
		m.notify(func(o Observer) { o.OnComplete(info) })
		force = false
	}
}

// send 调用条目的 send 回调
//
// 回调失败只记录日志，不影响后续状态转换。
func (m *Manager) send(e *entry) error {
	e.state = types.MsgStateSending
	e.attempts++

	err := e.send(e.payload.Bytes())
	if err != nil {
		m.sendLog.Do(func() {
			logger.Warn("send 回调失败",
				"id", e.id,
				"dest", e.dest,
				"attempt", e.attempts,
				"err", err)
		})
	}
	return err
}
