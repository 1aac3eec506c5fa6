package meshx

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/fx"

	"github.com/meshx/go-meshx/config"
	"github.com/meshx/go-meshx/internal/core/metrics"
	"github.com/meshx/go-meshx/internal/core/retransmit"
	"github.com/meshx/go-meshx/internal/core/txcm"
	"github.com/meshx/go-meshx/internal/model/client"
	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
	"github.com/meshx/go-meshx/pkg/lib/log"
)

var logger = log.Logger("meshx")

// ════════════════════════════════════════════════════════════════════════════
//                              节点状态
// ════════════════════════════════════════════════════════════════════════════

// State 节点状态
type State int

const (
	// StateIdle 已创建，未启动
	StateIdle State = iota
	// StateInitializing 正在启动
	StateInitializing
	// StateRunning 运行中
	StateRunning
	// StateStopping 正在停止
	StateStopping
	// StateStopped 已停止
	StateStopped
)

// String 返回状态名
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              Node
// ════════════════════════════════════════════════════════════════════════════

// Node MeshX 节点
//
// Node 持有一个 Fx 应用，组件在 New 时构造，在 Start 时启动。
// 停止后的节点不能再次启动。
type Node struct {
	// ────────────────────────────────────────────────────────────────────────
	// 配置和状态
	// ────────────────────────────────────────────────────────────────────────

	config *nodeConfig
	app    *fx.App

	mu      sync.RWMutex
	state   State
	started bool
	closed  bool

	// ────────────────────────────────────────────────────────────────────────
	// 核心组件（由 Fx 注入）
	// ────────────────────────────────────────────────────────────────────────

	manager *txcm.Manager
	bus     pkgif.EventBus
	client  *client.Base

	// 可选组件
	guard     *retransmit.Guard
	collector *metrics.Collector
}

// New 创建节点
//
// 只构造组件，不启动工作协程；需调用 Start。
func New(_ context.Context, opts ...Option) (*Node, error) {
	cfg := newNodeConfig()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	node := &Node{
		config: cfg,
		state:  StateIdle,
	}

	var err error
	node.app, err = buildFxApp(cfg, node)
	if err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	return node, nil
}

// Start 快捷启动函数
//
// 创建节点并立即启动，等价于 New() + Start()。
//
//	node, err := meshx.Start(ctx, meshx.WithMaxRetry(5))
func Start(ctx context.Context, opts ...Option) (*Node, error) {
	node, err := New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if err := node.Start(ctx); err != nil {
		return nil, fmt.Errorf("start node: %w", err)
	}
	return node, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              组件访问
// ════════════════════════════════════════════════════════════════════════════

// TXCM 返回发送控制模块接口
func (n *Node) TXCM() pkgif.TXCM {
	return n.manager
}

// Manager 返回发送控制模块实例
func (n *Node) Manager() *txcm.Manager {
	return n.manager
}

// Bus 返回事件总线
func (n *Node) Bus() pkgif.EventBus {
	return n.bus
}

// Client 返回客户端模型基类
func (n *Node) Client() *client.Base {
	return n.client
}

// Retransmit 返回 ACK 超时重发定时器，禁用时为 nil
func (n *Node) Retransmit() *retransmit.Guard {
	return n.guard
}

// Metrics 返回指标收集器，禁用时为 nil
func (n *Node) Metrics() *metrics.Collector {
	return n.collector
}

// Config 返回节点配置副本
func (n *Node) Config() *config.Config {
	return config.CloneConfig(n.config.config)
}

// State 返回节点状态
func (n *Node) State() State {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.state
}

// ════════════════════════════════════════════════════════════════════════════
//                              统计
// ════════════════════════════════════════════════════════════════════════════

// Stats 节点统计快照
type Stats struct {
	State   State
	TXCM    txcm.Stats
	Client  client.Stats
	Metrics metrics.Stats

	// RetransmitFired ACK 超时定时器触发次数
	RetransmitFired int64
}

// Stats 返回统计快照
func (n *Node) Stats() Stats {
	s := Stats{
		State:  n.State(),
		TXCM:   n.manager.Stats(),
		Client: n.client.Stats(),
	}
	if n.collector != nil {
		s.Metrics = n.collector.Snapshot()
	}
	if n.guard != nil {
		s.RetransmitFired = n.guard.Fired()
	}
	return s
}
