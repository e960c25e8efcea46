package config

// 桌面端窗口布局常量
// 窗口结构：顶部 HUD（按钮、计时、得分） + 下方游戏区域
//
// 调整指南：
//   - 游戏区域尺寸来自 GameConfig.Area，窗口宽度与之相同
//   - HUD 高度固定，窗口高度 = HUDHeight + Area.Height

// HUDHeight 顶部 HUD 高度（像素）
const HUDHeight = 56.0

// 开始/重新开始按钮尺寸
const (
	StartButtonWidth  = 96.0
	StartButtonHeight = 28.0
)

// Rect 轴对齐矩形（屏幕坐标）
type Rect struct {
	X, Y float64
	W, H float64
}

// Contains 检查点是否位于矩形内（右下边界不包含）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// WindowSize 返回逻辑窗口尺寸
func WindowSize(cfg *GameConfig) (int, int) {
	return int(cfg.Area.Width), int(HUDHeight + cfg.Area.Height)
}

// PlayAreaRect 返回游戏区域在屏幕上的位置
func PlayAreaRect(cfg *GameConfig) Rect {
	return Rect{X: 0, Y: HUDHeight, W: cfg.Area.Width, H: cfg.Area.Height}
}

// StartButtonRect 返回 HUD 中开始/重新开始按钮的位置（水平居中）
func StartButtonRect(cfg *GameConfig) Rect {
	return Rect{
		X: (cfg.Area.Width - StartButtonWidth) / 2,
		Y: (HUDHeight - StartButtonHeight) / 2,
		W: StartButtonWidth,
		H: StartButtonHeight,
	}
}

// GameOverButtonRect 返回游戏结束面板中重新开始按钮的位置
// 位于游戏区域中心偏下
func GameOverButtonRect(cfg *GameConfig) Rect {
	area := PlayAreaRect(cfg)
	return Rect{
		X: area.X + (area.W-StartButtonWidth)/2,
		Y: area.Y + area.H/2 + 24,
		W: StartButtonWidth,
		H: StartButtonHeight,
	}
}

// ScreenToArea 将屏幕坐标转换为游戏区域坐标
// 返回的 ok 表示该点是否位于游戏区域内
func ScreenToArea(cfg *GameConfig, screenX, screenY float64) (x, y float64, ok bool) {
	area := PlayAreaRect(cfg)
	if !area.Contains(screenX, screenY) {
		return 0, 0, false
	}
	return screenX - area.X, screenY - area.Y, true
}

// AreaToScreen 将游戏区域坐标转换为屏幕坐标
func AreaToScreen(cfg *GameConfig, x, y float64) (float64, float64) {
	area := PlayAreaRect(cfg)
	return x + area.X, y + area.Y
}
