// Package config 提供统一的配置管理
//
// 本包采用混合配置模式：
//   - 主 Config 结构体嵌入所有子配置
//   - 每个子配置在独立文件中定义
//   - 支持从 JSON 加载和保存配置
//   - 支持预设配置（default/lossy/minimal）
//
// 使用示例：
//
//	// 创建默认配置
//	cfg := config.NewConfig()
//	cfg.TXCM.MaxRetry = 5
//
//	// 应用预设到现有配置
//	config.ApplyPreset(cfg, "lossy")
//
//	// 从 JSON 加载
//	cfg, err := config.FromJSON(data)
package config

// Config 是 MeshX 的完整配置结构
//
// 配置按照功能模块组织：
//   - TXCM: 发送控制模块（队列长度、重试预算、载荷上限）
//   - Retransmit: ACK 超时重发定时器
//   - Metrics: Prometheus 指标
//   - EventBus: 控制任务事件总线
//   - Client: 客户端模型
type Config struct {
	// TXCM 发送控制模块配置
	TXCM TXCMConfig `json:"txcm"`

	// Retransmit ACK 超时重发配置
	Retransmit RetransmitConfig `json:"retransmit"`

	// Metrics 指标配置
	Metrics MetricsConfig `json:"metrics"`

	// EventBus 事件总线配置
	EventBus EventBusConfig `json:"eventbus"`

	// Client 客户端模型配置
	Client ClientConfig `json:"client"`
}

// NewConfig 创建默认配置
//
// 返回的配置使用所有组件的默认值，与设备固件的编译期常量一致。
func NewConfig() *Config {
	return &Config{
		TXCM:       DefaultTXCMConfig(),
		Retransmit: DefaultRetransmitConfig(),
		Metrics:    DefaultMetricsConfig(),
		EventBus:   DefaultEventBusConfig(),
		Client:     DefaultClientConfig(),
	}
}

// Validate 验证配置的有效性
//
// 检查所有子配置是否有效，如果发现无效配置则返回错误。
func (c *Config) Validate() error {
	if err := c.TXCM.Validate(); err != nil {
		return err
	}
	if err := c.Retransmit.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.EventBus.Validate(); err != nil {
		return err
	}
	if err := c.Client.Validate(); err != nil {
		return err
	}
	return nil
}
