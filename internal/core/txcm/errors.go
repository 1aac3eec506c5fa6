package txcm

import (
	"errors"
	"fmt"

	"github.com/meshx/go-meshx/internal/core/memory"
	"github.com/meshx/go-meshx/pkg/types"
)

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrInvalidArg 非法请求（信号类型越界、缺少 send 回调、载荷过长）
	ErrInvalidArg = errors.New("txcm: invalid argument")

	// ErrNoMem 载荷副本分配失败
	ErrNoMem = memory.ErrNoMem

	// ErrTimeout 队首消息重试耗尽
	//
	// 只通过事件总线异步报告，订阅者据此回调原始提交者。
	ErrTimeout = errors.New("txcm: retries exhausted")

	// ErrNotInitialized 尚未调用 Init
	ErrNotInitialized = errors.New("txcm: not initialized")

	// ErrClosed 已关闭
	ErrClosed = errors.New("txcm: closed")
)

// Error 携带操作上下文的错误
//
// 用于包装透传的队列错误，可通过 errors.Is 匹配 channel.ErrFull 等底层错误。
type Error struct {
	Op     string
	Signal types.SignalKind
	Cause  error
}

// Error 实现 error 接口
func (e *Error) Error() string {
	return fmt.Sprintf("txcm %s (%s): %v", e.Op, e.Signal, e.Cause)
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is 队列关闭错误同时匹配 ErrClosed
func (e *Error) Is(target error) bool {
	return target == ErrClosed && isClosedErr(e.Cause)
}

// opError 创建带操作上下文的错误
func opError(op string, sig types.SignalKind, cause error) error {
	return &Error{Op: op, Signal: sig, Cause: cause}
}
