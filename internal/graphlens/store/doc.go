// Package store 提供内容登记表的存储层。
//
// 登记表记录每个租户已摄取文档的指纹与存储路径，
// 支持 SQLite 与 MongoDB 两种后端。
package store
