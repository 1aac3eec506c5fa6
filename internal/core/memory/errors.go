package memory

import "errors"

// 错误定义
var (
	// ErrNoMem 超出内存预算
	ErrNoMem = errors.New("memory: allocation exceeds budget")

	// ErrInvalidSize 非法的分配大小
	ErrInvalidSize = errors.New("memory: invalid allocation size")
)
