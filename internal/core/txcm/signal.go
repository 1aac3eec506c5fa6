package txcm

import (
	"github.com/google/uuid"

	"github.com/meshx/go-meshx/internal/core/memory"
	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
	"github.com/meshx/go-meshx/pkg/types"
)

// ============================================================================
//                              信号
// ============================================================================

// signal 信号和类型，工作协程按具体类型分派
type signal interface {
	kind() types.SignalKind
}

// enqSend 入队需要确认的消息
type enqSend struct{ send pkgif.SendFunc }

// directSend 入队发送即完成的消息
type directSend struct{ send pkgif.SendFunc }

// resend 强制重发队首消息
type resend struct{}

// ack 确认队首消息
type ack struct{}

func (enqSend) kind() types.SignalKind    { return types.SignalEnqSend }
func (directSend) kind() types.SignalKind { return types.SignalDirectSend }
func (resend) kind() types.SignalKind     { return types.SignalResend }
func (ack) kind() types.SignalKind        { return types.SignalAck }

// newSignal 根据信号类型构造信号
func newSignal(kind types.SignalKind, send pkgif.SendFunc) (signal, error) {
	if !kind.Valid() {
		return nil, ErrInvalidArg
	}
	if kind.IsSend() && send == nil {
		return nil, ErrInvalidArg
	}

	switch kind {
	case types.SignalEnqSend:
		return enqSend{send: send}, nil
	case types.SignalDirectSend:
		return directSend{send: send}, nil
	case types.SignalResend:
		return resend{}, nil
	default:
		return ack{}, nil
	}
}

// request 信号请求
//
// payload 是 Submit 制作的私有副本，由工作协程转入投递条目或释放。
type request struct {
	id      uuid.UUID
	sig     signal
	dest    types.Address
	payload memory.Buffer
}
