package memory

// ============================================================================
//                              Buffer
// ============================================================================

// Buffer 唯一所有权的载荷缓冲区
//
// 零值为空 Buffer。Buffer 按值传递时所有权并不随之转移，
// 转移必须显式调用 Move。
type Buffer struct {
	data  []byte
	alloc Allocator
}

// Copy 从 src 制作私有副本
//
// src 为空时返回空 Buffer 且不分配。
func Copy(alloc Allocator, src []byte) (Buffer, error) {
	if len(src) == 0 {
		return Buffer{}, nil
	}
	data, err := alloc.Alloc(len(src))
	if err != nil {
		return Buffer{}, err
	}
	copy(data, src)
	return Buffer{data: data, alloc: alloc}, nil
}

// Move 转移所有权，b 变为空
func (b *Buffer) Move() Buffer {
	out := *b
	*b = Buffer{}
	return out
}

// Free 归还内存
//
// 释放后 b 变为空，再次调用无副作用。
func (b *Buffer) Free() {
	if b.data == nil {
		return
	}
	b.alloc.Free(b.data)
	*b = Buffer{}
}

// Bytes 返回底层字节（仅在持有所有权期间有效）
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len 返回长度
func (b *Buffer) Len() int {
	return len(b.data)
}

// Empty 是否为空
func (b *Buffer) Empty() bool {
	return b.data == nil
}
