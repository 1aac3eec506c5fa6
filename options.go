package meshx

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/meshx/go-meshx/config"
	"github.com/meshx/go-meshx/pkg/lib/log"
)

// Option 用户配置选项函数
type Option func(*nodeConfig) error

// nodeConfig 内部节点配置
type nodeConfig struct {
	// config 统一配置
	config *config.Config

	// registerer 指标注册器（nil 表示使用私有注册表）
	registerer prometheus.Registerer

	// clock 重发定时器时钟（nil 表示真实时钟）
	clock clock.Clock

	// userFxOptions 用户扩展 Fx 选项
	userFxOptions []fx.Option
}

// newNodeConfig 创建默认节点配置
func newNodeConfig() *nodeConfig {
	return &nodeConfig{
		config: config.NewConfig(),
	}
}

// ============================================================================
//                              配置选项
// ============================================================================

// WithConfig 使用完整的统一配置
//
// 配置会被复制，之后对 cfg 的修改不影响节点。
func WithConfig(cfg *config.Config) Option {
	return func(o *nodeConfig) error {
		if cfg == nil {
			return fmt.Errorf("配置不能为空")
		}
		o.config = config.CloneConfig(cfg)
		return nil
	}
}

// WithConfigFile 从 JSON 文件加载配置
func WithConfigFile(path string) Option {
	return func(o *nodeConfig) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		o.config = cfg
		return nil
	}
}

// WithPreset 应用预设配置
//
//	meshx.New(ctx, meshx.WithPreset(meshx.PresetNameLossy))
func WithPreset(name string) Option {
	return func(o *nodeConfig) error {
		return config.ApplyPreset(o.config, name)
	}
}

// ============================================================================
//                              TXCM 选项
// ============================================================================

// WithMaxRetry 设置每条消息的最大重发次数
//
// 传入 config.UnlimitedRetry 表示永不超时。
func WithMaxRetry(n int) Option {
	return func(o *nodeConfig) error {
		o.config.TXCM = o.config.TXCM.WithMaxRetry(n)
		return nil
	}
}

// WithQueueLen 设置信号队列与待投递队列长度
func WithQueueLen(signal, tx int) Option {
	return func(o *nodeConfig) error {
		if signal <= 0 || tx <= 0 {
			return fmt.Errorf("队列长度必须为正数")
		}
		o.config.TXCM = o.config.TXCM.WithQueueLen(signal, tx)
		return nil
	}
}

// WithSubmitTimeout 设置信号队列满时 Submit 的等待时间
func WithSubmitTimeout(d time.Duration) Option {
	return func(o *nodeConfig) error {
		o.config.TXCM = o.config.TXCM.WithSubmitTimeout(d)
		return nil
	}
}

// WithMemoryLimit 设置载荷内存预算
//
// 传入 config.AutoMemoryLimit 按物理内存自动推算。
func WithMemoryLimit(limit int64) Option {
	return func(o *nodeConfig) error {
		o.config.TXCM = o.config.TXCM.WithMemoryLimit(limit)
		return nil
	}
}

// WithSimplePolicy 使用不限重试、不校验 ACK 地址的简化策略
func WithSimplePolicy() Option {
	return func(o *nodeConfig) error {
		o.config.TXCM = o.config.TXCM.Simple()
		return nil
	}
}

// ============================================================================
//                              重发与指标选项
// ============================================================================

// WithRetransmit 启用或禁用 ACK 超时重发定时器
func WithRetransmit(enable bool) Option {
	return func(o *nodeConfig) error {
		o.config.Retransmit.Enabled = enable
		return nil
	}
}

// WithAckTimeout 设置等待 ACK 的时间
func WithAckTimeout(d time.Duration) Option {
	return func(o *nodeConfig) error {
		if d <= 0 {
			return fmt.Errorf("ACK 超时必须为正数")
		}
		o.config.Retransmit.AckTimeout = config.Duration(d)
		return nil
	}
}

// WithClock 设置重发定时器使用的时钟
//
// 测试中可传入 clock.NewMock()。
func WithClock(clk clock.Clock) Option {
	return func(o *nodeConfig) error {
		o.clock = clk
		return nil
	}
}

// WithMetrics 启用或禁用 Prometheus 指标
func WithMetrics(enable bool) Option {
	return func(o *nodeConfig) error {
		o.config.Metrics.Enabled = enable
		return nil
	}
}

// WithRegisterer 指定指标注册器
//
//	meshx.New(ctx, meshx.WithRegisterer(prometheus.DefaultRegisterer))
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *nodeConfig) error {
		o.registerer = reg
		return nil
	}
}

// ============================================================================
//                              其他选项
// ============================================================================

// WithLogLevel 设置日志级别（debug/info/warn/error）
func WithLogLevel(level string) Option {
	return func(o *nodeConfig) error {
		lvl, ok := log.ParseLevel(level)
		if !ok {
			return fmt.Errorf("未知日志级别: %s", level)
		}
		log.SetLevel(lvl)
		return nil
	}
}

// WithFxOption 追加用户自定义 Fx 选项
func WithFxOption(opts ...fx.Option) Option {
	return func(o *nodeConfig) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
