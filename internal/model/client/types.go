package client

import (
	"encoding/binary"
	"fmt"

	"github.com/meshx/go-meshx/pkg/types"
)

// Message 待发送的模型消息
type Message struct {
	ModelID uint16
	Opcode  uint32
	Dest    types.Address
	Params  []byte

	// Acked 是否需要对端状态消息确认
	Acked bool
}

// Status 网格栈上报的状态消息或本地超时
type Status struct {
	ModelID uint16
	Opcode  uint32
	Src     types.Address
	Dst     types.Address

	// TID 事务标识，0 表示消息不携带 TID
	TID uint8

	// Err 栈层错误或 TXCM 超时（ErrTimeout）
	Err error

	// Timeout 栈层等待状态超时
	Timeout bool

	Params []byte
}

// Failed 状态是否表示发送失败
func (s Status) Failed() bool {
	return s.Timeout || s.Err != nil
}

// Callback 模型状态回调
type Callback func(st Status) error

// ============================================================================
//                              ResendContext
// ============================================================================

// resendContextLen 上下文编码长度
const resendContextLen = 6

// ResendContext RESEND 请求携带的上下文
//
// 重试耗尽时随 TIMEOUT 事件返回，用于找到发起消息的模型。
type ResendContext struct {
	ModelID uint16
	Opcode  uint32
}

// Encode 编码为 2 字节模型 ID + 4 字节操作码（大端）
func (c ResendContext) Encode() []byte {
	buf := make([]byte, resendContextLen)
	binary.BigEndian.PutUint16(buf[0:2], c.ModelID)
	binary.BigEndian.PutUint32(buf[2:6], c.Opcode)
	return buf
}

// DecodeResendContext 解码 RESEND 上下文
func DecodeResendContext(data []byte) (ResendContext, error) {
	if len(data) < resendContextLen {
		return ResendContext{}, fmt.Errorf("%w: resend context too short (%d bytes)", ErrInvalidArg, len(data))
	}
	return ResendContext{
		ModelID: binary.BigEndian.Uint16(data[0:2]),
		Opcode:  binary.BigEndian.Uint32(data[2:6]),
	}, nil
}

// dedupKey 重复状态过滤键
type dedupKey struct {
	src     types.Address
	modelID uint16
	opcode  uint32
	tid     uint8
}
