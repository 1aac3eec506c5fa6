// Package interfaces 定义 MeshX 公共接口
//
//   - eventbus.go - 控制任务事件总线
//   - txcm.go     - 发送控制模块
//   - mock/       - 由 mockgen 生成的测试替身
package interfaces
