// Package memory 提供载荷缓冲区的分配与所有权管理
//
// TXCM 在 Submit 中为调用方的载荷制作私有副本，副本的所有权随信号
// 移交给工作协程，最终由工作协程恰好释放一次。
//
// # 核心组件
//
// Budget - 带字节上限的分配器：
//   - limit 为 0 表示不限制
//   - 超出上限时 Alloc 返回 ErrNoMem
//   - 统计在用字节数、未释放缓冲区数、分配/释放次数
//
// Buffer - 唯一所有权的载荷：
//   - Copy 从调用方缓冲区制作私有副本
//   - Move 转移所有权，原 Buffer 变为空
//   - Free 归还内存，空 Buffer 上调用无副作用
package memory
