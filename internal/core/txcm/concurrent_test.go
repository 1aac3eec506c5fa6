package txcm

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/meshx/go-meshx/pkg/types"
)

// TestManager_ConcurrentProducers 测试多生产者并发提交
//
// 每个生产者内部的提交顺序在发送顺序中保持不变。
func TestManager_ConcurrentProducers(t *testing.T) {
	const (
		producers = 8
		perProd   = 25
	)

	cfg := DefaultConfig()
	cfg.SignalQueueLen = 16
	cfg.TxQueueLen = 16
	cfg.SubmitTimeout = time.Second
	f := newFixture(t, cfg)

	var g errgroup.Group
	for p := 0; p < producers; p++ {
		g.Go(func() error {
			for i := 0; i < perProd; i++ {
				label := fmt.Sprintf("%d:%d", p, i)
				if err := f.m.DirectSend(types.Address(p+1), []byte(label), f.rec.Func(label)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	require.Eventually(t, func() bool { return f.rec.Len() == producers*perProd }, 5*time.Second, tick)

	next := make([]int, producers)
	for _, label := range f.rec.Labels() {
		parts := strings.SplitN(label, ":", 2)
		p, _ := strconv.Atoi(parts[0])
		i, _ := strconv.Atoi(parts[1])
		assert.Equal(t, next[p], i, "producer %d out of order", p)
		next[p] = i + 1
	}

	require.Eventually(t, func() bool { return f.tracker.Outstanding() == 0 }, waitFor, tick)
	assert.Zero(t, f.tracker.DoubleFrees())
}

// TestManager_ConcurrentAckAndResend 测试并发 ACK 与 RESEND
func TestManager_ConcurrentAckAndResend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SignalQueueLen = 64
	cfg.TxQueueLen = 64
	cfg.SubmitTimeout = time.Second
	cfg.MaxRetry = UnlimitedRetry
	f := newFixture(t, cfg)

	const n = 20
	for i := 0; i < n; i++ {
		require.NoError(t, f.m.EnqueueSend(1, []byte{byte(i)}, f.rec.Func(strconv.Itoa(i))))
	}

	var g errgroup.Group
	g.Go(func() error {
		for i := 0; i < n; i++ {
			if err := f.m.Resend(1, nil); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for i := 0; i < n; i++ {
			if err := f.m.Ack(1); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, g.Wait())

	require.Eventually(t, func() bool {
		acks, _, _ := f.obs.counts()
		return acks == n
	}, 5*time.Second, tick)

	// 每条消息至少发送一次，且首次发送顺序与提交顺序一致
	seen := make(map[string]bool)
	var firsts []string
	for _, l := range f.rec.Labels() {
		if !seen[l] {
			seen[l] = true
			firsts = append(firsts, l)
		}
	}
	require.Len(t, firsts, n)
	for i, l := range firsts {
		assert.Equal(t, strconv.Itoa(i), l)
	}
	assert.Zero(t, f.pending())
}
