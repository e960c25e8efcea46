// Package data 内置的游戏数据文件
//
// //go:embed 只能嵌入当前包目录及其子目录，所以嵌入声明放在 data/ 目录本身，
// 桌面端、终端版和移动端都从这里取得同一份默认配置。
package data

import "embed"

// FS 内置数据，路径相对于 data/（例如 config/game.yaml）
//
//go:embed config
var FS embed.FS
