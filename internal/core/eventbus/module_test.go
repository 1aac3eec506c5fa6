package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/meshx/go-meshx/config"
	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
	"github.com/meshx/go-meshx/pkg/types"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Load 测试 Fx 模块加载
func TestModule_Load(t *testing.T) {
	var bus pkgif.EventBus

	app := fxtest.New(t,
		Module(),
		fx.Populate(&bus),
	)
	app.RequireStart()
	require.NotNil(t, bus)

	sub, err := bus.Subscribe(types.MsgCodeTXCM, types.EvtTXCMTimeout)
	require.NoError(t, err)

	// 停止时关闭总线及其订阅
	app.RequireStop()
	_, ok := <-sub.Out()
	assert.False(t, ok)
}

// TestModule_Provides 测试模块提供的类型
func TestModule_Provides(t *testing.T) {
	result := ProvideEventBus(Params{})
	require.NotNil(t, result.EventBus)
	assert.Equal(t, defaultBufSize, result.EventBus.(*Bus).bufSize)

	cfg := config.NewConfig()
	cfg.EventBus.BufferSize = 3
	result = ProvideEventBus(Params{UnifiedCfg: cfg})
	assert.Equal(t, 3, result.EventBus.(*Bus).bufSize)
}
