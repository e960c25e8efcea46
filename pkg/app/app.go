// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/shubham-gund/shooter-game/pkg/config"
	"github.com/shubham-gund/shooter-game/pkg/game"
	"github.com/shubham-gund/shooter-game/pkg/scenes"
	"github.com/shubham-gund/shooter-game/pkg/utils"
)

// AppName gdata 存储使用的应用名
const AppName = "shooter_game"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 游戏配置文件路径，为空则使用内置默认配置
	ConfigPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	gameConfig               *config.GameConfig
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 使用内置配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := config.LoadGameConfigOrDefault(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}
	log.Printf("[Config] Area %vx%v, target %v, %d targets, %ds per round",
		gameConfig.Area.Width, gameConfig.Area.Height, gameConfig.TargetSize,
		gameConfig.InitialTargets, gameConfig.RoundSeconds)

	settings := game.NewSettingsManager(openStorage())

	session := game.NewGameSession(gameConfig)
	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewAimScene(session, settings))

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		gameConfig:   gameConfig,
	}, nil
}

// openStorage 打开 gdata 存储，失败时返回 nil（设置只保存在内存中）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(game.SettingsObject); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
	}

	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, settings will not persist: %v", err)
		return nil
	}
	return m
}

// ApplyWindowSettings 应用保存的显示设置（启动时调用）
func (a *App) ApplyWindowSettings() {
	if a.settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := config.WindowSize(a.gameConfig)
			ebiten.SetWindowSize(w, h)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if utils.IsAnyKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// F3 切换帧率显示
	if utils.IsAnyKeyJustPressed(ebiten.KeyF3) {
		show := a.settings.ToggleShowFPS()
		log.Printf("[App] ShowFPS = %v", show)
		a.saveSettings()
	}

	// F4 切换靶子颜色
	if utils.IsAnyKeyJustPressed(ebiten.KeyF4) {
		log.Printf("[App] TargetColor = %s", a.settings.CycleTargetColor())
		a.saveSettings()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}

	a.settings.SetFullscreen(ebiten.IsFullscreen())
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowSize(a.gameConfig)
}

// WindowSize 返回初始窗口尺寸
func (a *App) WindowSize() (int, int) {
	return config.WindowSize(a.gameConfig)
}

// Close 关闭当前场景（窗口关闭时调用）
func (a *App) Close() {
	a.sceneManager.Close()
}
