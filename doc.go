// Package meshx 提供网格节点的发送控制模块（TXCM）
//
// TXCM 位于模型层与网格协议栈之间，保证同一时刻至多一条需确认的消息在途，
// 按提交顺序投递，并在对端未确认时有限次重发。
//
// # 核心概念
//
//   - Node: 组装事件总线、TXCM、重发定时器、指标与客户端模型的入口
//   - TXCM: 单工作协程 + 信号队列 + 待投递队列
//   - Client: 模型侧生产者，把状态消息转换为 ACK / RESEND 信号
//
// # 快速开始
//
//	node, err := meshx.Start(ctx,
//	    meshx.WithPreset(meshx.PresetNameLossy),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer node.Close()
//
//	base := node.Client()
//	base.Register(modelID, onStatus)
//	base.Send(client.Message{ModelID: modelID, Dest: 0x0005, Params: p, Acked: true}, stackSend)
//
// # 组件层次
//
//	┌──────────────────────────────────────────────────────┐
//	│  模型层      client.Base  (Send / HandleStatus)       │
//	├──────────────────────────────────────────────────────┤
//	│  控制层      txcm.Manager ← retransmit.Guard          │
//	│                  │           metrics.Collector        │
//	├──────────────────┼───────────────────────────────────┤
//	│  事件层      eventbus.Bus (MsgCodeTXCM / TIMEOUT)     │
//	└──────────────────────────────────────────────────────┘
//
// # 文件组织
//
//   - meshx.go: 版本信息
//   - node.go: Node 结构与访问器
//   - node_lifecycle.go: Start / Stop / Close
//   - options.go: 用户选项
//   - presets.go: 预设配置
//   - fx.go: Fx 应用组装
//   - errors.go: 公共错误
package meshx
