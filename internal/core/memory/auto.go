package memory

import sysmem "github.com/pbnjay/memory"

// autoLimitDivisor 自动预算占物理内存的比例（1/1024）
const autoLimitDivisor = 1024

// minAutoLimit 自动预算下限
const minAutoLimit = 64 << 10

// AutoLimit 按物理内存推算载荷预算
//
// 无法获取物理内存时返回 0（不限制）。
func AutoLimit() int64 {
	return autoLimit(sysmem.TotalMemory())
}

func autoLimit(total uint64) int64 {
	if total == 0 {
		return 0
	}
	limit := int64(total / autoLimitDivisor)
	if limit < minAutoLimit {
		limit = minAutoLimit
	}
	return limit
}
