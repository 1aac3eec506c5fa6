package meshx

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/meshx/go-meshx/internal/core/eventbus"
	"github.com/meshx/go-meshx/internal/core/metrics"
	"github.com/meshx/go-meshx/internal/core/retransmit"
	"github.com/meshx/go-meshx/internal/core/txcm"
	"github.com/meshx/go-meshx/internal/model/client"
	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
	"github.com/meshx/go-meshx/pkg/lib/log"
)

var fxLogger = log.Logger("meshx/fx")

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. EventBus
//  2. Metrics（条件加载，向 txcm_observers 值组注入观察者）
//  3. TXCM
//  4. Retransmit（条件加载，启动后注册为观察者）
//  5. Client
//
// OnStop 按反向顺序执行：Client 先取消订阅，TXCM 再排空队列，最后关闭总线。
func buildFxApp(cfg *nodeConfig, node *Node) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置验证（前置）
	// ════════════════════════════════════════════════════════════════════════
	if err := cfg.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 核心模块（必须加载）
	// ════════════════════════════════════════════════════════════════════════
	modules := []fx.Option{
		fx.Supply(cfg.config),
		eventbus.Module(),
	}

	// ════════════════════════════════════════════════════════════════════════
	// 3. 指标（条件加载）
	// ════════════════════════════════════════════════════════════════════════
	if cfg.config.Metrics.Enabled {
		if cfg.registerer != nil {
			reg := cfg.registerer
			modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
		}
		modules = append(modules, metrics.Module)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 4. 发送控制
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, txcm.Module)

	// ════════════════════════════════════════════════════════════════════════
	// 5. ACK 超时重发（条件加载）
	// ════════════════════════════════════════════════════════════════════════
	if cfg.config.Retransmit.Enabled {
		if cfg.clock != nil {
			clk := cfg.clock
			modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
		}
		modules = append(modules, retransmit.Module)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 6. 客户端模型
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		client.Module,
		fx.Invoke(wireRetransmitContext),
	)

	// ════════════════════════════════════════════════════════════════════════
	// 7. 用户扩展（Fx Options）
	// ════════════════════════════════════════════════════════════════════════
	if len(cfg.userFxOptions) > 0 {
		modules = append(modules, cfg.userFxOptions...)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 8. Node 组件注入
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, fx.Invoke(injectNodeComponents(node)))

	// ════════════════════════════════════════════════════════════════════════
	// 9. Fx 配置
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, err
	}
	return app, nil
}

// ════════════════════════════════════════════════════════════════════════════
// 组件注入辅助函数
// ════════════════════════════════════════════════════════════════════════════

// retransmitWireParams 重发上下文连接参数
type retransmitWireParams struct {
	fx.In

	Guard  *retransmit.Guard `optional:"true"`
	Client *client.Base
}

// wireRetransmitContext 让重发定时器携带在途消息的模型上下文
//
// 重试耗尽时 TIMEOUT 事件据此找到发起消息的模型回调。
func wireRetransmitContext(p retransmitWireParams) {
	if p.Guard == nil {
		return
	}
	p.Guard.SetContextFunc(p.Client.InflightContext)
	fxLogger.Debug("重发定时器已连接客户端上下文")
}

// nodeInjectParams Node 组件注入参数
//
// 可选组件通过 optional:"true" 标签处理。
type nodeInjectParams struct {
	fx.In

	Manager  *txcm.Manager
	EventBus pkgif.EventBus
	Client   *client.Base

	Guard     *retransmit.Guard  `optional:"true"`
	Collector *metrics.Collector `optional:"true"`
}

// injectNodeComponents 创建 Node 组件注入函数
func injectNodeComponents(node *Node) interface{} {
	return func(params nodeInjectParams) {
		node.manager = params.Manager
		node.bus = params.EventBus
		node.client = params.Client
		node.guard = params.Guard
		node.collector = params.Collector
	}
}
