package main

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/meshx/go-meshx/config"
	"github.com/meshx/go-meshx/internal/core/channel"
	"github.com/meshx/go-meshx/internal/model/client"
)

// ============================================================================
//                              模拟有损链路
// ============================================================================

// maxTID 可用 TID 数（0 表示不去重，不分配）
const maxTID = 255

// lossyLink 模拟网格链路：每次发送以 ackProb 概率在 latency 后收到状态回复
//
// 同一条消息的重发沿用首次分配的 TID，迟到的重复回复由客户端过滤。
// TID 在最近一次使用（分配或回复）后保留 hold 时长，期间不会分给新消息，
// 避免新消息的回复落入客户端去重窗口被当作重复丢弃。
type lossyLink struct {
	deliver func(client.Status) error
	ackProb float64
	latency time.Duration
	hold    time.Duration

	mu        sync.Mutex
	rng       *rand.Rand
	tid       uint8
	busyUntil [maxTID + 1]time.Time
	timers    map[*time.Timer]struct{}
	closed    bool
}

func newLossyLink(deliver func(client.Status) error, ackProb float64, latency, hold time.Duration, seed uint64) *lossyLink {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &lossyLink{
		deliver: deliver,
		ackProb: ackProb,
		latency: latency,
		hold:    hold,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		timers:  make(map[*time.Timer]struct{}),
	}
}

// tidHold 计算 TID 保留时长：一条消息可能收到回复的最长时间加上去重窗口
func tidHold(cfg *config.Config, latency time.Duration) time.Duration {
	sends := cfg.TXCM.MaxRetry + 1
	if sends < 1 {
		sends = 1
	}
	return time.Duration(sends)*cfg.Retransmit.AckTimeout.Duration() + latency + cfg.Client.DedupTTL.Duration()
}

// SendFunc 为一条消息分配 TID 并生成 send 回调
//
// 所有 TID 都在保留期内时等待最早释放的一个。
func (l *lossyLink) SendFunc(ctx context.Context, msg client.Message) (func([]byte) error, error) {
	tid, err := l.acquireTID(ctx)
	if err != nil {
		return nil, err
	}
	return func(params []byte) error {
		if !l.delivered() {
			logger.Debug("模拟丢包", "dest", msg.Dest, "tid", tid)
			return nil
		}
		st := client.Status{
			ModelID: msg.ModelID,
			Opcode:  msg.Opcode,
			Src:     msg.Dest,
			TID:     tid,
			Params:  append([]byte(nil), params...),
		}
		l.reply(st)
		return nil
	}, nil
}

// Close 停止所有未到达的回复
func (l *lossyLink) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	for t := range l.timers {
		t.Stop()
	}
	clear(l.timers)
}

func (l *lossyLink) reply(st client.Status) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	var t *time.Timer
	t = time.AfterFunc(l.latency, func() {
		l.mu.Lock()
		delete(l.timers, t)
		l.reserveLocked(st.TID, time.Now())
		l.mu.Unlock()

		if err := l.deliver(st); err != nil && !errors.Is(err, client.ErrClosed) {
			logger.Warn("处理状态失败", "src", st.Src, "err", err)
		}
	})
	l.timers[t] = struct{}{}
}

// pendingReplies 尚未到达的回复数
func (l *lossyLink) pendingReplies() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

func (l *lossyLink) delivered() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64() < l.ackProb
}

// acquireTID 分配下一个不在保留期内的非零 TID
func (l *lossyLink) acquireTID(ctx context.Context) (uint8, error) {
	for {
		tid, wait := l.tryAcquire(time.Now())
		if tid != 0 {
			return tid, nil
		}
		logger.Debug("TID 耗尽，等待释放", "wait", wait)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, ctx.Err()
		case <-timer.C:
		}
	}
}

// tryAcquire 返回可用 TID；无可用时返回 0 与最早释放前的等待时长
func (l *lossyLink) tryAcquire(now time.Time) (uint8, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var earliest time.Time
	tid := l.tid
	for range maxTID {
		tid++
		if tid == 0 {
			tid = 1
		}
		until := l.busyUntil[tid]
		if !now.Before(until) {
			l.tid = tid
			l.reserveLocked(tid, now)
			return tid, 0
		}
		if earliest.IsZero() || until.Before(earliest) {
			earliest = until
		}
	}
	return 0, earliest.Sub(now)
}

func (l *lossyLink) reserveLocked(tid uint8, now time.Time) {
	if until := now.Add(l.hold); until.After(l.busyUntil[tid]) {
		l.busyUntil[tid] = until
	}
}

// isQueueFull 信号队列是否已满
func isQueueFull(err error) bool {
	return errors.Is(err, channel.ErrFull)
}
