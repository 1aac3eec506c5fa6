package txcm

import (
	"sync"

	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
)

// SendCall 一次 send 回调记录
type SendCall struct {
	Label  string
	Params []byte
}

// SendRecorder 记录 send 回调调用（测试辅助）
type SendRecorder struct {
	mu    sync.Mutex
	calls []SendCall
	err   error
	hook  func(label string)
}

// NewSendRecorder 创建 SendRecorder
func NewSendRecorder() *SendRecorder {
	return &SendRecorder{}
}

// Func 返回带标签的 send 回调
func (r *SendRecorder) Func(label string) pkgif.SendFunc {
	return func(params []byte) error {
		r.mu.Lock()
		r.calls = append(r.calls, SendCall{
			Label:  label,
			Params: append([]byte(nil), params...),
		})
		err, hook := r.err, r.hook
		r.mu.Unlock()

		if hook != nil {
			hook(label)
		}
		return err
	}
}

// SetError 设置 send 回调返回的错误
func (r *SendRecorder) SetError(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

// OnSend 设置每次 send 回调后执行的钩子（在工作协程中调用）
func (r *SendRecorder) OnSend(hook func(label string)) {
	r.mu.Lock()
	r.hook = hook
	r.mu.Unlock()
}

// Calls 返回所有调用记录
func (r *SendRecorder) Calls() []SendCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SendCall(nil), r.calls...)
}

// Labels 返回按调用顺序排列的标签
func (r *SendRecorder) Labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.Label)
	}
	return out
}

// Count 返回指定标签的调用次数
func (r *SendRecorder) Count(label string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Label == label {
			n++
		}
	}
	return n
}

// Len 返回调用总次数
func (r *SendRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
