package meshx

import (
	"github.com/meshx/go-meshx/config"
)

// ════════════════════════════════════════════════════════════════════════════
//                              预设配置常量
// ════════════════════════════════════════════════════════════════════════════

// 预设名称常量
const (
	// PresetNameDefault 默认预设，与设备固件的编译期常量一致
	PresetNameDefault = "default"

	// PresetNameLossy 高丢包链路预设
	PresetNameLossy = "lossy"

	// PresetNameMinimal 最小预设，关闭指标与重发定时器
	PresetNameMinimal = "minimal"
)

// ════════════════════════════════════════════════════════════════════════════
//                              预设配置获取
// ════════════════════════════════════════════════════════════════════════════

// GetPresetConfig 获取指定预设的配置
//
// 示例：
//
//	cfg, err := meshx.GetPresetConfig(meshx.PresetNameLossy)
func GetPresetConfig(name string) (*config.Config, error) {
	cfg := config.NewConfig()
	if err := config.ApplyPreset(cfg, name); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetLossyConfig 获取高丢包链路配置
//
// 特点：
//   - 更大的信号队列与待投递队列
//   - 更多的重发次数
//   - 更长的 ACK 等待时间
func GetLossyConfig() *config.Config {
	cfg, _ := GetPresetConfig(PresetNameLossy)
	return cfg
}

// GetMinimalConfig 获取最小配置
func GetMinimalConfig() *config.Config {
	cfg, _ := GetPresetConfig(PresetNameMinimal)
	return cfg
}
