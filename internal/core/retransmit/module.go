package retransmit

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/meshx/go-meshx/config"
	"github.com/meshx/go-meshx/internal/core/txcm"
)

// Params Guard 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	Manager    *txcm.Manager
	Clock      clock.Clock `optional:"true"`
}

// Module 是 retransmit 的 Fx 模块
var Module = fx.Module("retransmit",
	fx.Provide(ProvideGuard),
	fx.Invoke(registerLifecycle),
)

// ProvideGuard 提供 Guard 实例
func ProvideGuard(p Params) *Guard {
	return NewGuard(ConfigFromUnified(p.UnifiedCfg), p.Manager, p.Clock)
}

// registerLifecycle 将 Guard 注册为 TXCM 观察者
func registerLifecycle(lc fx.Lifecycle, m *txcm.Manager, g *Guard) {
	if !g.Enabled() {
		logger.Info("ACK 超时重发已禁用")
		return
	}
	m.AddObserver(g)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return g.Close()
		},
	})
}
