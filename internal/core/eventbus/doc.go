// Package eventbus 实现控制任务事件总线
//
// 订阅按 (消息码, 事件位图) 注册，发布时只投递给掩码与事件相交的订阅者：
//   - 多订阅者
//   - 缓冲区配置
//   - 慢消费者丢弃并限频告警
//   - 并发安全
//
// # 快速开始
//
//	bus := eventbus.NewBus()
//
//	sub, _ := bus.SubscribeFunc(types.MsgCodeTXCM, types.EvtTXCMTimeout,
//	    func(msg pkgif.ControlMessage) error {
//	        // 处理超时
//	        return nil
//	    })
//	defer sub.Close()
//
//	bus.Publish(types.MsgCodeTXCM, types.EvtTXCMTimeout, params)
//
// # Fx 模块
//
//	app := fx.New(
//	    eventbus.Module(),
//	    fx.Invoke(func(bus pkgif.EventBus) { ... }),
//	)
//
// # 并发安全
//
// Bus 使用 sync.RWMutex 保护消息码节点表，每个节点有独立的锁；
// 订阅关闭时先从节点移除再关闭通道，保证不会向已关闭通道发送。
package eventbus
