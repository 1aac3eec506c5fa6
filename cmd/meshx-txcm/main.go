// Package main 提供 meshx-txcm 命令行入口
//
// 启动一个 MeshX 节点，通过模拟的有损网格链路发送一批需确认的消息，
// 最后打印 TXCM 与指标统计。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	meshx "github.com/meshx/go-meshx"
	"github.com/meshx/go-meshx/config"
	"github.com/meshx/go-meshx/internal/model/client"
	"github.com/meshx/go-meshx/pkg/lib/log"
	"github.com/meshx/go-meshx/pkg/types"
)

var logger = log.Logger("meshx/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
var (
	configFile = flag.String("config", "", "配置文件路径")
	preset     = flag.String("preset", "lossy", "预设配置 (default/lossy/minimal)")
	logLevel   = flag.String("log-level", "warn", "日志级别 (debug/info/warn/error)")

	// ─────────────────────────────────────────────────────────────────────
	// 发送参数
	// ─────────────────────────────────────────────────────────────────────
	count      = flag.Int("count", 20, "发送消息数")
	dest       = flag.Uint("dest", 0x0005, "目的单播地址")
	maxRetry   = flag.Int("max-retry", -2, "最大重发次数（-1 = 不限，-2 = 使用配置）")
	ackTimeout = flag.Duration("ack-timeout", 0, "ACK 等待时间（0 = 使用配置）")

	// ─────────────────────────────────────────────────────────────────────
	// 模拟链路
	// ─────────────────────────────────────────────────────────────────────
	ackProb = flag.Float64("ack-prob", 0.6, "每次发送得到状态回复的概率")
	latency = flag.Duration("latency", 50*time.Millisecond, "状态回复延迟")
	seed    = flag.Uint64("seed", 0, "随机种子（0 = 随机）")

	deadline    = flag.Duration("timeout", time.Minute, "整体运行超时")
	showVersion = flag.Bool("version", false, "显示版本信息")
)

const (
	demoModel  uint16 = 0x1001
	demoOpcode uint32 = 0x8202
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()

	if *showVersion {
		fmt.Println(meshx.VersionInfo())
		return nil
	}

	opts, err := buildOptions()
	if err != nil {
		return fmt.Errorf("配置错误: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelRun := context.WithTimeout(ctx, *deadline)
	defer cancelRun()

	fmt.Printf("📦 %s\n", meshx.VersionInfo())
	node, err := meshx.Start(ctx, opts...)
	if err != nil {
		return fmt.Errorf("启动失败: %w", err)
	}
	defer func() { _ = node.Close() }()

	printConfig(node.Config())

	var (
		acked, timedOut atomic.Int64
		once            sync.Once
	)
	done := make(chan struct{})
	total := int64(*count)
	finish := func() {
		if acked.Load()+timedOut.Load() >= total {
			once.Do(func() { close(done) })
		}
	}

	base := node.Client()
	err = base.Register(demoModel, func(st client.Status) error {
		if client.IsTimeout(st.Err) {
			timedOut.Add(1)
			fmt.Printf("  ✗ 超时   dest=%s opcode=0x%04x\n", st.Dst, st.Opcode)
		} else {
			acked.Add(1)
			fmt.Printf("  ✓ 已确认 src=%s tid=%d\n", st.Src, st.TID)
		}
		finish()
		return nil
	})
	if err != nil {
		return err
	}

	link := newLossyLink(base.HandleStatus, *ackProb, *latency, tidHold(node.Config(), *latency), *seed)
	defer link.Close()

	target := types.Address(*dest)
	if !target.IsUnicast() {
		return fmt.Errorf("目的地址必须是单播地址: %s", target)
	}

	fmt.Printf("正在发送 %d 条消息 → %s (ack-prob=%.2f latency=%s)\n", *count, target, *ackProb, *latency)
	for i := 0; i < *count; i++ {
		msg := client.Message{
			ModelID: demoModel,
			Opcode:  demoOpcode,
			Dest:    target,
			Params:  []byte{byte(i >> 8), byte(i)},
			Acked:   true,
		}
		send, err := link.SendFunc(ctx, msg)
		if err != nil {
			return fmt.Errorf("分配第 %d 条消息的 TID 失败: %w", i, err)
		}
		if err := submitWithBackoff(ctx, base, msg, send); err != nil {
			return fmt.Errorf("提交第 %d 条消息失败: %w", i, err)
		}
	}

	if total == 0 {
		once.Do(func() { close(done) })
	}
	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("运行提前结束", "err", ctx.Err())
	}

	printStats(node.Stats(), acked.Load(), timedOut.Load())
	return nil
}

// submitWithBackoff 信号队列满时稍后重试
func submitWithBackoff(ctx context.Context, base *client.Base, msg client.Message, send func([]byte) error) error {
	backoff := 10 * time.Millisecond
	for {
		err := base.Send(msg, send)
		if err == nil || !isQueueFull(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 200*time.Millisecond {
			backoff *= 2
		}
	}
}

// buildOptions 构建选项
//
// 配置优先级（从高到低）：
//  1. 命令行参数
//  2. 环境变量（MESHX_* 前缀）
//  3. 配置文件
//  4. 预设默认值
func buildOptions() ([]meshx.Option, error) {
	var opts []meshx.Option

	cfg := config.NewConfig()
	if *configFile != "" {
		loaded, err := config.LoadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
		cfg = loaded
	} else if err := config.ApplyPreset(cfg, *preset); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	opts = append(opts, meshx.WithConfig(cfg))

	if *maxRetry >= config.UnlimitedRetry {
		opts = append(opts, meshx.WithMaxRetry(*maxRetry))
	}
	if *ackTimeout > 0 {
		opts = append(opts, meshx.WithAckTimeout(*ackTimeout))
	}
	opts = append(opts, meshx.WithLogLevel(*logLevel))
	return opts, nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Printf("  队列长度     信号=%d 待投递=%d\n", cfg.TXCM.SignalQueueLen, cfg.TXCM.TxQueueLen)
	fmt.Printf("  最大重发     %d\n", cfg.TXCM.MaxRetry)
	fmt.Printf("  ACK 超时     %s (启用=%v)\n", cfg.Retransmit.AckTimeout.Duration(), cfg.Retransmit.Enabled)
	fmt.Println("═══════════════════════════════════════════════════")
}

func printStats(s meshx.Stats, acked, timedOut int64) {
	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Printf("  已确认       %d\n", acked)
	fmt.Printf("  超时         %d\n", timedOut)
	fmt.Printf("  定时器重发   %d\n", s.RetransmitFired)
	fmt.Printf("  重复状态     %d\n", s.Client.Duplicates)
	fmt.Printf("  发送次数     %d (失败 %d)\n", s.Metrics.Sends, s.Metrics.SendErrors)
	fmt.Printf("  丢弃         %d\n", s.Metrics.Dropped)
	fmt.Printf("  待投递       %d\n", s.TXCM.PendingLen)
	fmt.Printf("  载荷内存     在用=%dB 未释放=%d\n", s.TXCM.Memory.InUse, s.TXCM.Memory.Outstanding)
	fmt.Println("═══════════════════════════════════════════════════")
}
