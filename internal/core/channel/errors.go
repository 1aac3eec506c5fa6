package channel

import "errors"

// 错误定义
var (
	// ErrFull 队列已满（非阻塞入队）
	ErrFull = errors.New("channel: full")

	// ErrEmpty 队列为空（非阻塞出队或查看）
	ErrEmpty = errors.New("channel: empty")

	// ErrTimeout 等待超时
	ErrTimeout = errors.New("channel: timeout")

	// ErrClosed 队列已关闭
	ErrClosed = errors.New("channel: closed")

	// ErrInvalidCapacity 容量非法
	ErrInvalidCapacity = errors.New("channel: capacity must be positive")
)
