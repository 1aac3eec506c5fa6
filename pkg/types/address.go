package types

import "fmt"

// ============================================================================
//                              Address - 网格地址
// ============================================================================

// Address 16 位网格节点地址
//
// 地址空间划分：
//   - 0x0000:          未分配地址
//   - 0x0001 - 0x7FFF: 单播地址（元素地址）
//   - 0x8000 - 0xBFFF: 虚拟地址
//   - 0xC000 - 0xFFFF: 组地址
type Address uint16

const (
	// AddrUnassigned 未分配地址
	AddrUnassigned Address = 0x0000

	// AddrAllNodes 全节点组地址
	AddrAllNodes Address = 0xFFFF
)

// IsUnassigned 是否为未分配地址
func (a Address) IsUnassigned() bool {
	return a == AddrUnassigned
}

// IsUnicast 是否为单播地址
func (a Address) IsUnicast() bool {
	return a != AddrUnassigned && a&0x8000 == 0
}

// IsVirtual 是否为虚拟地址
func (a Address) IsVirtual() bool {
	return a&0xC000 == 0x8000
}

// IsGroup 是否为组地址
func (a Address) IsGroup() bool {
	return a&0xC000 == 0xC000
}

// String 返回四位十六进制表示
func (a Address) String() string {
	return fmt.Sprintf("0x%04x", uint16(a))
}
