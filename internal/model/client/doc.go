// Package client 实现客户端模型基类
//
// Base 是 TXCM 的生产者：模型通过 Send 提交消息，网格栈收到状态消息后
// 调用 HandleStatus，由 Base 决定提交 ACK 还是 RESEND，并把结果回调给
// 已注册的模型。重试耗尽时 TXCM 发布的 TIMEOUT 事件也由 Base 订阅并
// 转换为带 ErrTimeout 的回调。
//
// 使用示例：
//
//	base := client.New("generic-onoff", mgr, bus, client.DefaultConfig())
//	base.Register(0x1001, func(st client.Status) error {
//	    if st.Err != nil {
//	        return st.Err
//	    }
//	    // 处理状态载荷
//	    return nil
//	})
//	if err := base.Start(); err != nil {
//	    return err
//	}
//	err := base.Send(client.Message{
//	    ModelID: 0x1001,
//	    Opcode:  0x8201,
//	    Dest:    0x0005,
//	    Params:  []byte{0x01, 0x00},
//	    Acked:   true,
//	}, stackSend)
package client
