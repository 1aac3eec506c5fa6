package eventbus

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
	"github.com/meshx/go-meshx/pkg/types"
)

const (
	evtA types.Event = 1 << 0
	evtB types.Event = 1 << 1
)

// ============================================================================
// 接口契约测试
// ============================================================================

// TestBus_ImplementsInterface 验证 Bus 实现接口
func TestBus_ImplementsInterface(t *testing.T) {
	var _ pkgif.EventBus = (*Bus)(nil)
}

// ============================================================================
// 基础功能测试
// ============================================================================

// TestBus_PublishAndReceive 测试事件发布和接收
func TestBus_PublishAndReceive(t *testing.T) {
	bus := NewBus()

	sub, err := bus.Subscribe(types.MsgCodeTXCM, types.EvtTXCMTimeout)
	require.NoError(t, err)
	defer sub.Close()

	params := []byte{1, 2, 3}
	require.NoError(t, bus.Publish(types.MsgCodeTXCM, types.EvtTXCMTimeout, params))

	// 发布后修改原缓冲区不影响已发布事件
	params[0] = 9

	select {
	case msg := <-sub.Out():
		assert.Equal(t, types.MsgCodeTXCM, msg.Code)
		assert.Equal(t, types.EvtTXCMTimeout, msg.Event)
		assert.Equal(t, []byte{1, 2, 3}, msg.Params)
	case <-time.After(time.Second):
		t.Fatal("event not received")
	}
}

// TestBus_EventMaskFilter 测试事件位图过滤
func TestBus_EventMaskFilter(t *testing.T) {
	bus := NewBus()

	onlyA, _ := bus.Subscribe(types.MsgCodeSystem, evtA)
	defer onlyA.Close()
	both, _ := bus.Subscribe(types.MsgCodeSystem, evtA|evtB)
	defer both.Close()

	require.NoError(t, bus.Publish(types.MsgCodeSystem, evtB, nil))

	select {
	case msg := <-both.Out():
		assert.Equal(t, evtB, msg.Event)
		assert.Nil(t, msg.Params)
	case <-time.After(time.Second):
		t.Fatal("mask A|B did not receive B")
	}

	select {
	case <-onlyA.Out():
		t.Fatal("mask A received B")
	case <-time.After(20 * time.Millisecond):
	}
}

// TestBus_CodeIsolation 测试消息码隔离
func TestBus_CodeIsolation(t *testing.T) {
	bus := NewBus()

	sub, _ := bus.Subscribe(types.MsgCodeToApp, types.EvtAll)
	defer sub.Close()

	require.NoError(t, bus.Publish(types.MsgCodeTXCM, types.EvtTXCMTimeout, nil))

	select {
	case <-sub.Out():
		t.Fatal("received event for another code")
	case <-time.After(20 * time.Millisecond):
	}
}

// TestBus_InvalidArgs 测试非法参数
func TestBus_InvalidArgs(t *testing.T) {
	bus := NewBus()

	_, err := bus.Subscribe(types.MsgCodeMax, evtA)
	assert.ErrorIs(t, err, ErrInvalidArg)

	_, err = bus.Subscribe(types.MsgCodeTXCM, 0)
	assert.ErrorIs(t, err, ErrInvalidArg)

	_, err = bus.SubscribeFunc(types.MsgCodeTXCM, evtA, nil)
	assert.ErrorIs(t, err, ErrInvalidArg)

	assert.ErrorIs(t, bus.Publish(types.MsgCode(-1), evtA, nil), ErrInvalidArg)
	assert.ErrorIs(t, bus.Publish(types.MsgCodeTXCM, 0, nil), ErrInvalidArg)
}

// TestBus_PublishWithoutSubscribers 测试无订阅者发布
func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	assert.NoError(t, bus.Publish(types.MsgCodeTXCM, types.EvtTXCMTimeout, []byte{1}))
}

// TestBus_SlowConsumerDrops 测试缓冲区满时丢弃
func TestBus_SlowConsumerDrops(t *testing.T) {
	bus := NewBus()

	sub, _ := bus.Subscribe(types.MsgCodeSystem, evtA, BufSize(1))
	defer sub.Close()

	require.NoError(t, bus.Publish(types.MsgCodeSystem, evtA, []byte{1}))
	require.NoError(t, bus.Publish(types.MsgCodeSystem, evtA, []byte{2}))

	msg := <-sub.Out()
	assert.Equal(t, []byte{1}, msg.Params)

	select {
	case <-sub.Out():
		t.Fatal("second event should have been dropped")
	default:
	}
}

// ============================================================================
// SubscribeFunc 测试
// ============================================================================

// TestBus_SubscribeFunc 测试回调订阅
func TestBus_SubscribeFunc(t *testing.T) {
	bus := NewBus()

	got := make(chan pkgif.ControlMessage, 2)
	sub, err := bus.SubscribeFunc(types.MsgCodeTXCM, types.EvtTXCMTimeout, func(msg pkgif.ControlMessage) error {
		got <- msg
		return errors.New("handler error is only logged")
	})
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, bus.Publish(types.MsgCodeTXCM, types.EvtTXCMTimeout, []byte{7}))
	require.NoError(t, bus.Publish(types.MsgCodeTXCM, types.EvtTXCMTimeout, []byte{8}))

	for _, want := range []byte{7, 8} {
		select {
		case msg := <-got:
			assert.Equal(t, []byte{want}, msg.Params)
		case <-time.After(time.Second):
			t.Fatal("handler not invoked")
		}
	}
}

// ============================================================================
// 关闭测试
// ============================================================================

// TestSubscription_CloseIdempotent 测试重复关闭订阅
func TestSubscription_CloseIdempotent(t *testing.T) {
	bus := NewBus()
	sub, _ := bus.Subscribe(types.MsgCodeTXCM, evtA)

	assert.NoError(t, sub.Close())
	assert.NoError(t, sub.Close())

	_, ok := <-sub.Out()
	assert.False(t, ok)

	// 关闭后发布不会 panic
	assert.NoError(t, bus.Publish(types.MsgCodeTXCM, evtA, nil))
}

// TestBus_Close 测试关闭总线
func TestBus_Close(t *testing.T) {
	bus := NewBus()
	sub, _ := bus.Subscribe(types.MsgCodeTXCM, evtA)

	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	_, ok := <-sub.Out()
	assert.False(t, ok)

	assert.ErrorIs(t, bus.Publish(types.MsgCodeTXCM, evtA, nil), ErrClosed)
	_, err := bus.Subscribe(types.MsgCodeTXCM, evtA)
	assert.ErrorIs(t, err, ErrClosed)
}

// ============================================================================
// 并发测试
// ============================================================================

// TestBus_ConcurrentPublishAndClose 测试并发发布与取消订阅
func TestBus_ConcurrentPublishAndClose(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub, err := bus.Subscribe(types.MsgCodeSystem, evtA, BufSize(4))
			if err != nil {
				return
			}
			time.Sleep(time.Millisecond)
			sub.Close()
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = bus.Publish(types.MsgCodeSystem, evtA, []byte{byte(j)})
			}
		}()
	}
	wg.Wait()
}
