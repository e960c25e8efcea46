package game

import (
	"fmt"
	"image/color"
	"log"
	"strconv"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DefaultTargetColor 靶子默认颜色
const DefaultTargetColor = "#e74c3c"

// TargetColorPalette F4 循环切换的靶子颜色，第一个是默认颜色
var TargetColorPalette = []string{DefaultTargetColor, "#3498db", "#2ecc71", "#f1c40f", "#9b59b6"}

// DisplaySettings 显示偏好设置
// 只保存显示相关的偏好，不保存成绩
type DisplaySettings struct {
	Fullscreen  bool   `yaml:"fullscreen"`  // 启动时是否全屏（F11 切换）
	ShowFPS     bool   `yaml:"showFPS"`     // 是否显示帧率（F3 切换）
	TargetColor string `yaml:"targetColor"` // 靶子颜色，#RRGGBB
}

// DefaultSettings 返回默认设置
func DefaultSettings() *DisplaySettings {
	return &DisplaySettings{
		Fullscreen:  false,
		ShowFPS:     false,
		TargetColor: DefaultTargetColor,
	}
}

// SettingsManager 设置管理器
// 负责显示设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *DisplaySettings
}

// 存储路径常量
const (
	// SettingsObject gdata 中保存设置的对象（即存储目录下的子目录名）
	SettingsObject   = "settings"
	settingsProperty = "display"
)

// NewSettingsManager 创建新的设置管理器实例
//
// gdataManager 可为 nil（降级模式，仅内存设置）。
// 加载失败不是致命错误，记录警告后使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或文件不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(SettingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(SettingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，旧版本文件中缺失的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if _, err := ParseHexColor(loaded.TargetColor); err != nil {
		log.Printf("[SettingsManager] Warning: invalid target color %q, using default", loaded.TargetColor)
		loaded.TargetColor = DefaultTargetColor
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(SettingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *DisplaySettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// ToggleShowFPS 切换帧率显示，返回切换后的值
func (sm *SettingsManager) ToggleShowFPS() bool {
	sm.settings.ShowFPS = !sm.settings.ShowFPS
	return sm.settings.ShowFPS
}

// SetTargetColor 设置靶子颜色
// 颜色格式无效时返回错误，设置不变
func (sm *SettingsManager) SetTargetColor(hex string) error {
	if _, err := ParseHexColor(hex); err != nil {
		return err
	}
	sm.settings.TargetColor = hex
	return nil
}

// CycleTargetColor 切换到调色板中的下一个颜色，返回切换后的值
// 当前颜色不在调色板中（手动编辑过设置文件）时回到第一个
func (sm *SettingsManager) CycleTargetColor() string {
	next := TargetColorPalette[0]
	for i, c := range TargetColorPalette {
		if strings.EqualFold(c, sm.settings.TargetColor) {
			next = TargetColorPalette[(i+1)%len(TargetColorPalette)]
			break
		}
	}
	if err := sm.SetTargetColor(next); err != nil {
		log.Printf("[SettingsManager] Warning: palette color %q rejected: %v", next, err)
	}
	return sm.settings.TargetColor
}

// TargetRGBA 返回解析后的靶子颜色
func (sm *SettingsManager) TargetRGBA() color.RGBA {
	c, err := ParseHexColor(sm.settings.TargetColor)
	if err != nil {
		c, _ = ParseHexColor(DefaultTargetColor)
	}
	return c
}

// ParseHexColor 解析 #RRGGBB 格式的颜色
func ParseHexColor(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #RRGGBB", hex)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
