package txcm

import (
	"encoding/binary"

	"github.com/meshx/go-meshx/pkg/types"
)

// TimeoutEvent TIMEOUT 事件参数
//
// 编码格式：2 字节大端目的地址，后接 RESEND 请求携带的上下文。
type TimeoutEvent struct {
	Dest    types.Address
	Context []byte
}

// EncodeTimeout 编码 TIMEOUT 事件参数
func EncodeTimeout(ev TimeoutEvent) []byte {
	buf := make([]byte, 2+len(ev.Context))
	binary.BigEndian.PutUint16(buf, uint16(ev.Dest))
	copy(buf[2:], ev.Context)
	return buf
}

// DecodeTimeout 解码 TIMEOUT 事件参数
func DecodeTimeout(params []byte) (TimeoutEvent, error) {
	if len(params) < 2 {
		return TimeoutEvent{}, ErrInvalidArg
	}
	ev := TimeoutEvent{
		Dest: types.Address(binary.BigEndian.Uint16(params)),
	}
	if len(params) > 2 {
		ev.Context = append([]byte(nil), params[2:]...)
	}
	return ev, nil
}
