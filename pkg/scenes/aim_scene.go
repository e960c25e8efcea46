package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/shubham-gund/shooter-game/pkg/components"
	"github.com/shubham-gund/shooter-game/pkg/config"
	"github.com/shubham-gund/shooter-game/pkg/ecs"
	"github.com/shubham-gund/shooter-game/pkg/game"
	"github.com/shubham-gund/shooter-game/pkg/utils"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// 界面颜色
var (
	colorBackground = color.RGBA{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff}
	colorHUD        = color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
	colorPlayArea   = color.RGBA{R: 0xec, G: 0xf0, B: 0xf1, A: 0xff}
	colorAreaBorder = color.RGBA{R: 0x34, G: 0x49, B: 0x5e, A: 0xff}
	colorButton     = color.RGBA{R: 0x27, G: 0xae, B: 0x60, A: 0xff}
	colorButtonEdge = color.RGBA{R: 0x1e, G: 0x84, B: 0x49, A: 0xff}
	colorOverlay    = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xa0}
)

// debugCharWidth / debugCharHeight ebitenutil 调试字体的字符尺寸
const (
	debugCharWidth  = 6
	debugCharHeight = 16
)

// AimScene 打靶游戏主场景
//
// 职责只有两个：把指针输入转换成 GameSession 命令，以及根据快照绘制画面。
// 倒计时由 GameSession 自身在 Update 中推进。
type AimScene struct {
	session  *game.GameSession
	settings *game.SettingsManager
	cfg      *config.GameConfig
}

// NewAimScene 创建打靶场景
// settings 可以为 nil（使用默认显示设置）
func NewAimScene(session *game.GameSession, settings *game.SettingsManager) *AimScene {
	if settings == nil {
		settings = game.NewSettingsManager(nil)
	}
	return &AimScene{
		session:  session,
		settings: settings,
		cfg:      session.Config(),
	}
}

// Update 处理输入并推进倒计时
func (s *AimScene) Update(deltaTime float64) {
	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		s.HandlePointer(float64(x), float64(y))
	}

	// 键盘快捷键：非进行中时按 Enter/Space 开始
	if s.session.Phase() != game.PhaseRunning && utils.IsAnyKeyJustPressed(ebiten.KeyEnter, ebiten.KeySpace) {
		s.session.Start()
	}

	s.session.Update(deltaTime)
}

// HandlePointer 处理一次屏幕坐标上的点击
//
// 优先级：HUD 按钮 > 结算面板按钮 > 游戏区域。
// 游戏区域之外（HUD 空白处）的点击被忽略，不计入点击数。
func (s *AimScene) HandlePointer(screenX, screenY float64) {
	if config.StartButtonRect(s.cfg).Contains(screenX, screenY) {
		log.Printf("[AimScene] Start button clicked (phase: %s)", s.session.Phase())
		s.session.Start()
		return
	}

	phase := s.session.Phase()
	if phase == game.PhaseOver && config.GameOverButtonRect(s.cfg).Contains(screenX, screenY) {
		log.Printf("[AimScene] Play again clicked")
		s.session.Start()
		return
	}

	if phase != game.PhaseRunning {
		return
	}

	x, y, ok := config.ScreenToArea(s.cfg, screenX, screenY)
	if !ok {
		return
	}

	if id, hit := PickTarget(s.session.Snapshot().Targets, s.cfg.TargetSize, x, y); hit {
		s.session.HitTarget(id)
	} else {
		s.session.RegisterBackgroundMiss()
	}
}

// Close 关闭场景时结束进行中的一局
func (s *AimScene) Close() {
	s.session.Close()
}

// PickTarget 返回区域坐标 (x, y) 处的靶子
// 靶子按生成顺序绘制，重叠时后绘制的在上层，因此从后往前查找
func PickTarget(targets []game.Target, size, x, y float64) (ecs.EntityID, bool) {
	hitbox := components.ClickableComponent{Width: size, Height: size, IsEnabled: true}
	for i := len(targets) - 1; i >= 0; i-- {
		t := targets[i]
		if hitbox.Contains(t.X, t.Y, x, y) {
			return t.ID, true
		}
	}
	return ecs.InvalidEntity, false
}

// Draw 绘制场景
func (s *AimScene) Draw(screen *ebiten.Image) {
	snap := s.session.Snapshot()

	screen.Fill(colorBackground)
	s.drawHUD(screen, snap)
	s.drawPlayArea(screen, snap)

	if snap.Phase == game.PhaseOver {
		s.drawGameOver(screen, snap)
	}

	if s.settings.GetSettings().ShowFPS {
		fpsText := fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS())
		w, _ := config.WindowSize(s.cfg)
		ebitenutil.DebugPrintAt(screen, fpsText, w-len(fpsText)*debugCharWidth-8, int(config.HUDHeight)+4)
	}
}

// drawHUD 绘制顶部信息栏：剩余时间、开始按钮、得分和命中率
func (s *AimScene) drawHUD(screen *ebiten.Image, snap game.Snapshot) {
	w, _ := config.WindowSize(s.cfg)
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(config.HUDHeight), colorHUD, false)

	textY := int(config.HUDHeight-debugCharHeight) / 2
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Time: %ds", snap.TimeRemaining), 12, textY)

	stats := fmt.Sprintf("Score: %d   Accuracy: %.2f%%", snap.Score, snap.Accuracy)
	ebitenutil.DebugPrintAt(screen, stats, w-len(stats)*debugCharWidth-12, textY)

	label := "Start"
	if snap.Phase != game.PhaseIdle {
		label = "Restart"
	}
	drawButton(screen, config.StartButtonRect(s.cfg), label)
}

// drawPlayArea 绘制游戏区域和所有靶子
func (s *AimScene) drawPlayArea(screen *ebiten.Image, snap game.Snapshot) {
	area := config.PlayAreaRect(s.cfg)
	vector.DrawFilledRect(screen, float32(area.X), float32(area.Y), float32(area.W), float32(area.H), colorPlayArea, false)
	vector.StrokeRect(screen, float32(area.X), float32(area.Y), float32(area.W), float32(area.H), 2, colorAreaBorder, false)

	if snap.Phase == game.PhaseIdle {
		hint := utils.PointerVerb() + " Start to begin"
		ebitenutil.DebugPrintAt(screen, hint,
			int(area.X+(area.W-float64(len(hint)*debugCharWidth))/2),
			int(area.Y+area.H/2))
		return
	}

	targetColor := s.settings.TargetRGBA()
	radius := float32(s.cfg.TargetSize / 2)
	for _, t := range snap.Targets {
		sx, sy := config.AreaToScreen(s.cfg, t.X, t.Y)
		vector.DrawFilledCircle(screen, float32(sx)+radius, float32(sy)+radius, radius, targetColor, true)
	}
}

// drawGameOver 绘制结算面板
func (s *AimScene) drawGameOver(screen *ebiten.Image, snap game.Snapshot) {
	area := config.PlayAreaRect(s.cfg)
	vector.DrawFilledRect(screen, float32(area.X), float32(area.Y), float32(area.W), float32(area.H), colorOverlay, false)

	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Clicks: %d   Missed: %d", snap.TotalClicks, snap.MissedClicks),
		fmt.Sprintf("Accuracy: %.2f%%", snap.Accuracy),
	}

	y := int(area.Y+area.H/2) - len(lines)*debugCharHeight - 8
	for _, line := range lines {
		x := int(area.X + (area.W-float64(len(line)*debugCharWidth))/2)
		ebitenutil.DebugPrintAt(screen, line, x, y)
		y += debugCharHeight
	}

	drawButton(screen, config.GameOverButtonRect(s.cfg), "Play Again")
}

// drawButton 绘制带文字的矩形按钮
func drawButton(screen *ebiten.Image, r config.Rect, label string) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), colorButton, false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, colorButtonEdge, false)

	textX := int(r.X + (r.W-float64(len(label)*debugCharWidth))/2)
	textY := int(r.Y + (r.H-debugCharHeight)/2)
	ebitenutil.DebugPrintAt(screen, label, textX, textY)
}
