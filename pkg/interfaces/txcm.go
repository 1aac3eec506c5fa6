package interfaces

import "github.com/meshx/go-meshx/pkg/types"

// SendFunc 模型客户端提供的发送函数
//
// 由 TXCM 工作协程同步调用，params 在调用期间有效。
type SendFunc func(params []byte) error

// TXCM 发送控制模块接口
//
// 生产者只通过 Submit 投递信号，所有队列变更都在工作协程中完成。
type TXCM interface {
	// Submit 提交一个信号请求
	//
	// 返回后调用方可立即复用 params 缓冲区。
	Submit(kind types.SignalKind, dest types.Address, params []byte, send SendFunc) error
}
