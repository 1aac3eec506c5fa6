package types

// ============================================================================
//                              SignalKind - TXCM 信号类型
// ============================================================================

// SignalKind 发送控制模块信号类型
type SignalKind int

const (
	// SignalEnqSend 入队发送（需要 ACK）
	SignalEnqSend SignalKind = iota
	// SignalDirectSend 直接发送（无需 ACK）
	SignalDirectSend
	// SignalResend 重发队首消息
	SignalResend
	// SignalAck 确认队首消息
	SignalAck

	signalKindMax
)

// Valid 是否为合法信号类型
func (k SignalKind) Valid() bool {
	return k >= SignalEnqSend && k < signalKindMax
}

// IsSend 是否为发送类信号（需要 send 回调）
func (k SignalKind) IsSend() bool {
	return k == SignalEnqSend || k == SignalDirectSend
}

// String 返回信号类型的字符串表示
func (k SignalKind) String() string {
	switch k {
	case SignalEnqSend:
		return "enq_send"
	case SignalDirectSend:
		return "direct_send"
	case SignalResend:
		return "resend"
	case SignalAck:
		return "ack"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              MsgKind - 消息类型
// ============================================================================

// MsgKind 投递条目类型
type MsgKind int

const (
	// MsgAcked 需要确认的消息
	MsgAcked MsgKind = iota
	// MsgUnacked 发送即完成的消息
	MsgUnacked
)

// String 返回消息类型的字符串表示
func (k MsgKind) String() string {
	switch k {
	case MsgAcked:
		return "acked"
	case MsgUnacked:
		return "unacked"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              MsgState - 消息状态
// ============================================================================

// MsgState 投递条目状态
type MsgState int

const (
	// MsgStateNew 新建，尚未发送
	MsgStateNew MsgState = iota
	// MsgStateSending 正在调用 send 回调
	MsgStateSending
	// MsgStateWaitingAck 已发送，等待确认
	MsgStateWaitingAck
	// MsgStateAck 已确认（终态）
	MsgStateAck
	// MsgStateNack 重试耗尽被丢弃（终态）
	MsgStateNack
)

// String 返回状态的字符串表示
func (s MsgState) String() string {
	switch s {
	case MsgStateNew:
		return "new"
	case MsgStateSending:
		return "sending"
	case MsgStateWaitingAck:
		return "waiting_ack"
	case MsgStateAck:
		return "ack"
	case MsgStateNack:
		return "nack"
	default:
		return "unknown"
	}
}

// InFlight 是否处于发送中或等待确认
func (s MsgState) InFlight() bool {
	return s == MsgStateSending || s == MsgStateWaitingAck
}
