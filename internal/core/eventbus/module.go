// Package eventbus 实现控制任务事件总线
package eventbus

import (
	"context"

	"go.uber.org/fx"

	"github.com/meshx/go-meshx/config"
	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	EventBus pkgif.EventBus
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(ProvideEventBus),
		fx.Invoke(registerLifecycle),
	)
}

// Params EventBus 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
}

// ProvideEventBus 提供 EventBus 实例
func ProvideEventBus(p Params) Result {
	size := defaultBufSize
	if p.UnifiedCfg != nil {
		size = p.UnifiedCfg.EventBus.BufferSize
	}
	return Result{
		EventBus: NewBusWithBuffer(size),
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC       fx.Lifecycle
	EventBus pkgif.EventBus
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return input.EventBus.Close()
		},
	})
}
