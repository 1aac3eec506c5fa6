package txcm

import (
	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
	"github.com/meshx/go-meshx/pkg/types"
)

// ============================================================================
//                              信号处理
// ============================================================================

// handleSend 处理 ENQ_SEND / DIRECT_SEND
//
// 载荷所有权移入新条目，追加到待投递队列尾部后尝试服务队首。
func (m *Manager) handleSend(req *request, kind types.MsgKind, send pkgif.SendFunc) error {
	e := newEntry(req, kind, send, m.cfg.MaxRetry)

	if err := m.txQ.PushBack(e, 0); err != nil {
		e.payload.Free()
		m.notify(func(o Observer) { o.OnDrop(DropQueueFull, e.dest) })
		return opError("enqueue", req.sig.kind(), err)
	}

	logger.Debug("消息已入待投递队列",
		"id", e.id,
		"dest", e.dest,
		"kind", kind,
		"pending", m.txQ.Len())

	if _, err := m.tryServiceHead(false); err != nil {
		return opError("service", req.sig.kind(), err)
	}
	return nil
}

// handleResend 处理 RESEND
//
// 强制服务队首；重试耗尽时发布一次 TIMEOUT 事件，参数携带本请求的上下文。
func (m *Manager) handleResend(req *request) error {
	defer req.payload.Free()

	dropped, err := m.tryServiceHead(true)
	if err != nil {
		return opError("resend", types.SignalResend, err)
	}
	if dropped == nil {
		return nil
	}

	info := dropped.info()
	m.notify(func(o Observer) { o.OnTimeout(info) })
	logger.Warn("消息重试耗尽",
		"id", dropped.id,
		"dest", dropped.dest,
		"attempts", dropped.attempts)

	params := EncodeTimeout(TimeoutEvent{
		Dest:    dropped.dest,
		Context: req.payload.Bytes(),
	})
	pubErr := m.bus.Publish(types.MsgCodeTXCM, types.EvtTXCMTimeout, params)

	// 被丢弃条目之后的新消息不能等待下一次外部信号
	if _, err := m.tryServiceHead(false); err != nil {
		return opError("service", types.SignalResend, err)
	}
	if pubErr != nil {
		return opError("publish", types.SignalResend, pubErr)
	}
	return nil
}

// handleAck 处理 ACK
//
// 目的地址匹配时移除队首并释放载荷；不匹配只记录日志，队首保持不变。
func (m *Manager) handleAck(req *request) error {
	defer req.payload.Free()

	head, err := m.txQ.Peek(0)
	if err != nil {
		m.notify(func(o Observer) { o.OnDrop(DropAckEmpty, req.dest) })
		logger.Debug("ACK 到达时队列为空", "dest", req.dest)
		return nil
	}

	if m.cfg.MatchAckAddress && head.dest != req.dest {
		m.notify(func(o Observer) { o.OnDrop(DropAckMismatch, req.dest) })
		logger.Warn("ACK 地址与队首不匹配",
			"ackDest", req.dest,
			"headDest", head.dest,
			"headID", head.id)
		return nil
	}

	if _, err := m.txQ.Pop(0); err != nil {
		return opError("ack", types.SignalAck, err)
	}
	if head.state != types.MsgStateWaitingAck {
		logger.Debug("确认尚未等待 ACK 的队首", "id", head.id, "state", head.state)
	}

	head.state = types.MsgStateAck
	head.payload.Free()
	info := head.info()
	m.notify(func(o Observer) { o.OnAck(info) })
	logger.Debug("消息已确认", "id", head.id, "dest", head.dest, "attempts", head.attempts)

	if _, err := m.tryServiceHead(false); err != nil {
		return opError("service", types.SignalAck, err)
	}
	return nil
}
