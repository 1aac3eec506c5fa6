// Package types 定义 MeshX 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他 meshx 内部包。
//
// # 文件组织
//
//   - address.go - Address 16 位网格地址
//   - enums.go   - SignalKind, MsgKind, MsgState
//   - events.go  - 控制任务消息码 MsgCode 与事件位图 Event
package types
