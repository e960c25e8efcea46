package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shubham-gund/shooter-game/pkg/embedded"
)

// 默认游戏参数
const (
	DefaultAreaWidth      = 800 // 游戏区域宽度（像素）
	DefaultAreaHeight     = 400 // 游戏区域高度（像素）
	DefaultTargetSize     = 20  // 靶子边长（像素）
	DefaultInitialTargets = 10  // 开局靶子数量
	DefaultRoundSeconds   = 30  // 每局时长（秒）
)

// ErrInvalidConfig 配置校验失败
var ErrInvalidConfig = errors.New("invalid game config")

// AreaConfig 游戏区域尺寸
type AreaConfig struct {
	Width  float64 `yaml:"width"`  // 宽度（像素）
	Height float64 `yaml:"height"` // 高度（像素）
}

// GameConfig 游戏配置数据结构
// 定义了游戏区域、靶子尺寸、开局靶子数量和每局时长
type GameConfig struct {
	Area           AreaConfig `yaml:"area"`           // 游戏区域
	TargetSize     float64    `yaml:"targetSize"`     // 靶子边长
	InitialTargets int        `yaml:"initialTargets"` // 开局生成的靶子数量
	RoundSeconds   int        `yaml:"roundSeconds"`   // 倒计时初始秒数
}

// DefaultGameConfig 返回默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Area: AreaConfig{
			Width:  DefaultAreaWidth,
			Height: DefaultAreaHeight,
		},
		TargetSize:     DefaultTargetSize,
		InitialTargets: DefaultInitialTargets,
		RoundSeconds:   DefaultRoundSeconds,
	}
}

// MaxTargetX 靶子左上角 X 坐标的上界（不包含）
// 保证靶子完整位于游戏区域内
func (c *GameConfig) MaxTargetX() float64 {
	return c.Area.Width - c.TargetSize
}

// MaxTargetY 靶子左上角 Y 坐标的上界（不包含）
func (c *GameConfig) MaxTargetY() float64 {
	return c.Area.Height - c.TargetSize
}

// LoadGameConfig 从YAML文件加载游戏配置
// 参数：
//
//	filepath - 配置文件的路径（相对或绝对路径）
//
// 返回：
//
//	*GameConfig - 解析后的配置对象
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadGameConfig(filepath string) (*GameConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filepath, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return cfg, nil
}

// LoadGameConfigOrDefault 加载游戏配置
// path 为空时读取内置的 data/config/game.yaml（需要先调用 embedded.Init）
func LoadGameConfigOrDefault(path string) (*GameConfig, error) {
	if path != "" {
		return LoadGameConfig(path)
	}

	data, err := embedded.ReadFile(embedded.DefaultGameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded config: %w", err)
	}
	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", embedded.DefaultGameConfigPath, err)
	}
	return cfg, nil
}

// ParseGameConfig 解析YAML格式的游戏配置
// 缺失的字段使用默认值，解析后进行校验
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	// 应用默认值（未配置的字段为零值）
	applyDefaults(&cfg)

	if err := validateGameConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults 为 GameConfig 中缺失的字段设置默认值
func applyDefaults(cfg *GameConfig) {
	if cfg.Area.Width == 0 {
		cfg.Area.Width = DefaultAreaWidth
	}
	if cfg.Area.Height == 0 {
		cfg.Area.Height = DefaultAreaHeight
	}
	if cfg.TargetSize == 0 {
		cfg.TargetSize = DefaultTargetSize
	}
	if cfg.InitialTargets == 0 {
		cfg.InitialTargets = DefaultInitialTargets
	}
	if cfg.RoundSeconds == 0 {
		cfg.RoundSeconds = DefaultRoundSeconds
	}
}

// validateGameConfig 验证游戏配置的合法性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.Area.Width < 0 || cfg.Area.Height < 0 {
		return fmt.Errorf("%w: area size must be positive, got %vx%v", ErrInvalidConfig, cfg.Area.Width, cfg.Area.Height)
	}

	if cfg.TargetSize < 0 {
		return fmt.Errorf("%w: targetSize must be positive, got %v", ErrInvalidConfig, cfg.TargetSize)
	}

	// 靶子必须能够完整放入游戏区域
	if cfg.TargetSize >= cfg.Area.Width || cfg.TargetSize >= cfg.Area.Height {
		return fmt.Errorf("%w: targetSize %v does not fit in area %vx%v",
			ErrInvalidConfig, cfg.TargetSize, cfg.Area.Width, cfg.Area.Height)
	}

	if cfg.InitialTargets < 0 {
		return fmt.Errorf("%w: initialTargets cannot be negative, got %d", ErrInvalidConfig, cfg.InitialTargets)
	}

	if cfg.RoundSeconds < 0 {
		return fmt.Errorf("%w: roundSeconds must be positive, got %d", ErrInvalidConfig, cfg.RoundSeconds)
	}

	return nil
}
