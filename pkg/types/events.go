package types

// ============================================================================
//                              控制任务消息码
// ============================================================================

// MsgCode 控制任务消息码
//
// 每个消息码对应一组独立的订阅者链表。
type MsgCode int

const (
	// MsgCodeSystem 系统事件
	MsgCodeSystem MsgCode = iota
	// MsgCodeToBLE 发往 BLE 栈的事件
	MsgCodeToBLE
	// MsgCodeFromBLE 来自 BLE 栈的事件
	MsgCodeFromBLE
	// MsgCodeToApp 发往应用层的事件
	MsgCodeToApp
	// MsgCodeTXCM 发送控制模块事件
	MsgCodeTXCM

	// MsgCodeMax 消息码上界（不含）
	MsgCodeMax
)

// Valid 是否为合法消息码
func (c MsgCode) Valid() bool {
	return c >= MsgCodeSystem && c < MsgCodeMax
}

// String 返回消息码的字符串表示
func (c MsgCode) String() string {
	switch c {
	case MsgCodeSystem:
		return "system"
	case MsgCodeToBLE:
		return "to_ble"
	case MsgCodeFromBLE:
		return "from_ble"
	case MsgCodeToApp:
		return "to_app"
	case MsgCodeTXCM:
		return "txcm"
	default:
		return "unknown"
	}
}

// Event 事件位图
//
// 订阅时使用掩码，发布时通常只置一位。
type Event uint32

// Has 掩码是否包含 e 中任意一位
func (m Event) Has(e Event) bool {
	return m&e != 0
}

// TXCM 事件（MsgCodeTXCM）
const (
	// EvtTXCMTimeout 队首消息重试耗尽
	EvtTXCMTimeout Event = 1 << iota
)

// EvtAll 匹配所有事件的掩码
const EvtAll Event = 0xFFFFFFFF
