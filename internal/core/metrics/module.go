package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/meshx/go-meshx/config"
	"github.com/meshx/go-meshx/internal/core/txcm"
)

// Config 指标配置
type Config struct {
	// Enabled 是否启用指标收集
	Enabled bool

	// Namespace 指标命名空间
	Namespace string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	c := config.DefaultMetricsConfig()
	if cfg != nil {
		c = cfg.Metrics
	}
	return Config{
		Enabled:   c.Enabled,
		Namespace: c.Namespace,
	}
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	UnifiedCfg *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Result Metrics 模块输出
type Result struct {
	fx.Out

	Collector *Collector
	Observer  txcm.Observer `group:"txcm_observers"`
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(ProvideCollector),
)

// ProvideCollector 提供 Collector 实例
//
// 禁用时 Collector 为 nil，且不向观察者值组注入任何实现。
func ProvideCollector(p Params) (Result, error) {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enabled {
		return Result{}, nil
	}

	c := NewCollector(cfg.Namespace)
	reg := p.Registerer
	if reg == nil {
		c.registry = prometheus.NewRegistry()
		reg = c.registry
	}
	if err := c.Register(reg); err != nil {
		return Result{}, err
	}
	return Result{Collector: c, Observer: c}, nil
}
