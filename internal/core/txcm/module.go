package txcm

import (
	"context"

	"go.uber.org/fx"

	"github.com/meshx/go-meshx/config"
	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
)

// ObserverGroup 观察者值组名
const ObserverGroup = "txcm_observers"

// Params TXCM 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config `optional:"true"`
	EventBus   pkgif.EventBus
	Observers  []Observer `group:"txcm_observers"`
}

// Result TXCM 模块输出
type Result struct {
	fx.Out

	Manager *Manager
	TXCM    pkgif.TXCM
}

// Module 是 txcm 的 Fx 模块
var Module = fx.Module("txcm",
	fx.Provide(ProvideManager),
	fx.Invoke(registerLifecycle),
)

// ProvideManager 提供 Manager 实例
func ProvideManager(p Params) (Result, error) {
	obs := make([]Observer, 0, len(p.Observers))
	for _, o := range p.Observers {
		if o != nil {
			obs = append(obs, o)
		}
	}

	m, err := New(ConfigFromUnified(p.UnifiedCfg), p.EventBus, WithObservers(obs...))
	if err != nil {
		return Result{}, err
	}
	return Result{Manager: m, TXCM: m}, nil
}

// registerLifecycle 注册生命周期钩子
func registerLifecycle(lc fx.Lifecycle, m *Manager) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return m.Init(ctx)
		},
		OnStop: func(_ context.Context) error {
			return m.Close()
		},
	})
}
