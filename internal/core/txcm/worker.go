package txcm

import (
	"github.com/meshx/go-meshx/internal/core/channel"
	"github.com/meshx/go-meshx/pkg/types"
)

// ============================================================================
//                              工作协程
// ============================================================================

// run 工作协程主循环
//
// 唯一的挂起点是信号队列出队。信号队列关闭且缓冲信号处理完后退出。
func (m *Manager) run(sigQ *channel.Channel[*request], done chan struct{}) {
	defer close(done)
	logger.Info("TXCM 工作协程已启动")

	for {
		req, err := sigQ.Pop(channel.Forever)
		if err != nil {
			if isClosedErr(err) {
				logger.Info("TXCM 工作协程退出")
				return
			}
			m.logError("信号出队失败", "err", err)
			continue
		}

		if err := m.dispatch(req); err != nil {
			m.logError("信号处理失败",
				"signal", req.sig.kind(),
				"dest", req.dest,
				"id", req.id,
				"err", err)
		}
	}
}

// dispatch 按信号类型分派
func (m *Manager) dispatch(req *request) error {
	switch sig := req.sig.(type) {
	case enqSend:
		return m.handleSend(req, types.MsgAcked, sig.send)
	case directSend:
		return m.handleSend(req, types.MsgUnacked, sig.send)
	case resend:
		return m.handleResend(req)
	case ack:
		return m.handleAck(req)
	default:
		req.payload.Free()
		return ErrInvalidArg
	}
}

// logError 限频输出错误日志
func (m *Manager) logError(msg string, args ...any) {
	m.errLog.Do(func() {
		logger.Error(msg, args...)
	})
}
