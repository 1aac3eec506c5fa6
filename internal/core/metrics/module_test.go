package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/meshx/go-meshx/config"
	"github.com/meshx/go-meshx/internal/core/eventbus"
	"github.com/meshx/go-meshx/internal/core/txcm"
)

// TestModule_InjectsObserver 测试模块向 TXCM 注入观察者
func TestModule_InjectsObserver(t *testing.T) {
	var (
		c   *Collector
		mgr *txcm.Manager
	)
	app := fxtest.New(t,
		eventbus.Module(),
		txcm.Module,
		Module,
		fx.Populate(&c, &mgr),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, c)
	require.NoError(t, mgr.Ack(1))
	assert.Equal(t, int64(1), c.Snapshot().Submitted)
}

// TestModule_Disabled 测试禁用时不注入
func TestModule_Disabled(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Metrics.Enabled = false

	var (
		c   *Collector
		mgr *txcm.Manager
	)
	app := fxtest.New(t,
		fx.Supply(cfg),
		eventbus.Module(),
		txcm.Module,
		Module,
		fx.Populate(&c, &mgr),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Nil(t, c)
	assert.NoError(t, mgr.Ack(1))
}
