package meshx

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"github.com/meshx/go-meshx/config"
	"github.com/meshx/go-meshx/internal/core/txcm"
	"github.com/meshx/go-meshx/internal/model/client"
	"github.com/meshx/go-meshx/pkg/types"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond

	testModel uint16 = 0x1001
)

// statusRecorder 记录客户端回调
type statusRecorder struct {
	mu  sync.Mutex
	sts []client.Status
}

func (r *statusRecorder) callback(st client.Status) error {
	r.mu.Lock()
	r.sts = append(r.sts, st)
	r.mu.Unlock()
	return nil
}

func (r *statusRecorder) all() []client.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]client.Status(nil), r.sts...)
}

func startNode(t *testing.T, opts ...Option) *Node {
	t.Helper()
	node, err := Start(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = node.Close() })
	return node
}

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期
// ════════════════════════════════════════════════════════════════════════════

// TestNode_Lifecycle 测试启动与停止的状态转换
func TestNode_Lifecycle(t *testing.T) {
	ctx := context.Background()
	node, err := New(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, node.State())
	assert.ErrorIs(t, node.Stop(ctx), ErrNotStarted)

	require.NoError(t, node.Start(ctx))
	assert.Equal(t, StateRunning, node.State())
	assert.ErrorIs(t, node.Start(ctx), ErrAlreadyStarted)
	assert.True(t, node.Stats().TXCM.Initialized)

	require.NoError(t, node.Stop(ctx))
	assert.Equal(t, StateStopped, node.State())
	assert.True(t, node.Stats().TXCM.Closed)

	assert.ErrorIs(t, node.Stop(ctx), ErrNodeClosed)
	assert.ErrorIs(t, node.Start(ctx), ErrNodeClosed)
	assert.NoError(t, node.Close())

	t.Log("✅ 节点生命周期测试通过")
}

// TestNode_CloseWithoutStart 测试未启动直接关闭
func TestNode_CloseWithoutStart(t *testing.T) {
	node, err := New(context.Background())
	require.NoError(t, err)
	require.NoError(t, node.Close())
	assert.Equal(t, StateStopped, node.State())
	assert.ErrorIs(t, node.Start(context.Background()), ErrNodeClosed)
}

// TestNode_InvalidOptions 测试无效选项
func TestNode_InvalidOptions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		opt  Option
	}{
		{"nil config", WithConfig(nil)},
		{"unknown preset", WithPreset("satellite")},
		{"zero queue", WithQueueLen(0, 10)},
		{"zero ack timeout", WithAckTimeout(0)},
		{"bad log level", WithLogLevel("loud")},
		{"missing config file", WithConfigFile(t.TempDir() + "/missing.json")},
		{"invalid retry", WithMaxRetry(-5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(ctx, tt.opt)
			assert.Error(t, err)
		})
	}
}

// TestNode_Presets 测试预设配置
func TestNode_Presets(t *testing.T) {
	node := startNode(t, WithPreset(PresetNameMinimal))
	assert.Nil(t, node.Metrics())
	assert.Nil(t, node.Retransmit())
	assert.NotNil(t, node.Client())

	lossy := GetLossyConfig()
	require.NotNil(t, lossy)
	assert.Equal(t, 6, lossy.TXCM.MaxRetry)
	assert.False(t, GetMinimalConfig().Metrics.Enabled)

	_, err := GetPresetConfig("unknown")
	assert.Error(t, err)
}

// TestNode_ConfigIsolated 测试节点配置与调用方隔离
func TestNode_ConfigIsolated(t *testing.T) {
	cfg := config.NewConfig()
	cfg.TXCM.MaxRetry = 7

	node, err := New(context.Background(), WithConfig(cfg))
	require.NoError(t, err)
	defer node.Close()

	cfg.TXCM.MaxRetry = 1
	assert.Equal(t, 7, node.Config().TXCM.MaxRetry)
	assert.Equal(t, 7, node.Manager().Config().MaxRetry)
}

// TestNode_FxOption 测试用户 Fx 扩展
func TestNode_FxOption(t *testing.T) {
	var got *txcm.Manager
	node := startNode(t, WithFxOption(fx.Invoke(func(m *txcm.Manager) { got = m })))
	assert.Same(t, node.Manager(), got)
}

// ════════════════════════════════════════════════════════════════════════════
//                              端到端
// ════════════════════════════════════════════════════════════════════════════

// TestNode_SendAndAck 测试状态确认放行下一条消息并更新指标
func TestNode_SendAndAck(t *testing.T) {
	reg := prometheus.NewRegistry()
	node := startNode(t, WithRegisterer(reg), WithRetransmit(false))

	rec := txcm.NewSendRecorder()
	statuses := &statusRecorder{}
	base := node.Client()
	require.NoError(t, base.Register(testModel, statuses.callback))

	require.NoError(t, base.Send(client.Message{ModelID: testModel, Dest: 5, Params: []byte{1}, Acked: true}, rec.Func("a")))
	require.NoError(t, base.Send(client.Message{ModelID: testModel, Dest: 6, Params: []byte{2}, Acked: true}, rec.Func("b")))
	require.Eventually(t, func() bool { return rec.Len() == 1 }, waitFor, tick)

	require.NoError(t, base.HandleStatus(client.Status{ModelID: testModel, Src: 5, TID: 3}))
	require.Eventually(t, func() bool { return rec.Len() == 2 }, waitFor, tick)
	assert.Equal(t, []string{"a", "b"}, rec.Labels())
	assert.Len(t, statuses.all(), 1)

	require.Eventually(t, func() bool {
		m := node.Stats().Metrics
		return m.Acks == 1 && m.Sends == 2
	}, waitFor, tick)
	assert.Equal(t, int64(1), node.Stats().Metrics.InFlight)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "meshx_txcm_sends_total")
	assert.Contains(t, names, "meshx_txcm_acks_total")
}

// TestNode_RetransmitUntilTimeout 测试 ACK 定时器驱动重发直至超时回调
func TestNode_RetransmitUntilTimeout(t *testing.T) {
	mock := clock.NewMock()
	node := startNode(t,
		WithClock(mock),
		WithMaxRetry(1),
		WithAckTimeout(time.Second),
	)
	require.NotNil(t, node.Retransmit())

	rec := txcm.NewSendRecorder()
	statuses := &statusRecorder{}
	base := node.Client()
	require.NoError(t, base.Register(testModel, statuses.callback))

	require.NoError(t, base.Send(client.Message{
		ModelID: testModel,
		Opcode:  0x8202,
		Dest:    9,
		Params:  []byte{0xAA},
		Acked:   true,
	}, rec.Func("a")))
	require.Eventually(t, func() bool { return rec.Len() == 1 && node.Retransmit().Armed() }, waitFor, tick)

	// 第一次到期：重发
	mock.Add(time.Second)
	require.Eventually(t, func() bool { return rec.Len() == 2 && node.Retransmit().Armed() }, waitFor, tick)

	// 第二次到期：重试耗尽，客户端收到超时回调
	mock.Add(time.Second)
	require.Eventually(t, func() bool { return len(statuses.all()) == 1 }, waitFor, tick)

	st := statuses.all()[0]
	assert.True(t, client.IsTimeout(st.Err))
	assert.Equal(t, uint32(0x8202), st.Opcode)
	assert.Equal(t, types.Address(9), st.Dst)
	assert.Equal(t, 2, rec.Count("a"))

	stats := node.Stats()
	assert.Equal(t, int64(2), stats.RetransmitFired)
	assert.Equal(t, int64(1), stats.Client.Timeouts)
	assert.Equal(t, 0, stats.TXCM.PendingLen)
}

// TestNode_ConcurrentProducers 测试多生产者下各自的提交顺序保持不变
func TestNode_ConcurrentProducers(t *testing.T) {
	node := startNode(t,
		WithQueueLen(64, 64),
		WithSubmitTimeout(time.Second),
	)
	tx := node.TXCM()
	rec := txcm.NewSendRecorder()

	const (
		producers = 4
		perProd   = 25
	)

	var g errgroup.Group
	for p := 0; p < producers; p++ {
		p := p
		g.Go(func() error {
			for i := 0; i < perProd; i++ {
				label := fmt.Sprintf("%d-%d", p, i)
				dest := types.Address(p + 1)
				if err := tx.Submit(types.SignalDirectSend, dest, []byte{byte(i)}, rec.Func(label)); err != nil {
					return fmt.Errorf("producer %d msg %d: %w", p, i, err)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Eventually(t, func() bool { return rec.Len() == producers*perProd }, waitFor, tick)

	next := make(map[string]int)
	for _, label := range rec.Labels() {
		parts := strings.SplitN(label, "-", 2)
		require.Len(t, parts, 2)
		idx, err := strconv.Atoi(parts[1])
		require.NoError(t, err)
		assert.Equal(t, next[parts[0]], idx, "producer %s out of order", parts[0])
		next[parts[0]] = idx + 1
	}
}

// TestVersionInfo 测试版本信息
func TestVersionInfo(t *testing.T) {
	assert.True(t, strings.HasPrefix(VersionInfo(), "MeshX "+Version))

	GitCommit = "0123456789abcdef"
	defer func() { GitCommit = "" }()
	assert.Contains(t, VersionInfo(), "(01234567)")
}
