package txcm

import (
	"github.com/google/uuid"

	"github.com/meshx/go-meshx/internal/core/memory"
	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
	"github.com/meshx/go-meshx/pkg/types"
)

// entry 待投递队列条目
//
// 只有队首条目可能处于 SENDING/WAITING_ACK。
type entry struct {
	id       uuid.UUID
	dest     types.Address
	payload  memory.Buffer
	retry    int
	kind     types.MsgKind
	state    types.MsgState
	send     pkgif.SendFunc
	attempts int
}

// newEntry 由发送类信号创建条目，载荷所有权从请求移入
func newEntry(req *request, kind types.MsgKind, send pkgif.SendFunc, maxRetry int) *entry {
	return &entry{
		id:      req.id,
		dest:    req.dest,
		payload: req.payload.Move(),
		retry:   maxRetry,
		kind:    kind,
		state:   types.MsgStateNew,
		send:    send,
	}
}

// info 返回条目快照
func (e *entry) info() EntryInfo {
	return EntryInfo{
		ID:       e.id,
		Dest:     e.dest,
		Kind:     e.kind,
		State:    e.state,
		Retry:    e.retry,
		Attempts: e.attempts,
		Len:      e.payload.Len(),
	}
}
