package client

import (
	"context"

	"go.uber.org/fx"

	"github.com/meshx/go-meshx/config"
	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
)

// DefaultName 默认客户端名
const DefaultName = "base"

// Params 客户端依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	TXCM       pkgif.TXCM
	EventBus   pkgif.EventBus
}

// Module 是客户端模型的 Fx 模块
var Module = fx.Module("client",
	fx.Provide(ProvideBase),
	fx.Invoke(registerLifecycle),
)

// ProvideBase 提供客户端模型基类
func ProvideBase(p Params) (*Base, error) {
	return New(DefaultName, p.TXCM, p.EventBus, ConfigFromUnified(p.UnifiedCfg))
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(lc fx.Lifecycle, b *Base) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return b.Start()
		},
		OnStop: func(_ context.Context) error {
			return b.Close()
		},
	})
}
