package client

import "errors"

var (
	// ErrInvalidArg 参数无效
	ErrInvalidArg = errors.New("client: invalid argument")

	// ErrNotStarted 尚未订阅 TXCM 事件
	ErrNotStarted = errors.New("client: not started")

	// ErrClosed 已关闭
	ErrClosed = errors.New("client: closed")
)
