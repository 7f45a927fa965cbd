// Package biz 提供 graphlens 服务的业务逻辑层。
//
// 业务逻辑拆分为以下组件：
//   - DocumentService: 文档摄取（指纹去重、归档、索引、登记）与文档管理
//   - QueryService: 向量与图谱双路检索编排
//   - ResetService: 租户级联重置
package biz
