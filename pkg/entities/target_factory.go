package entities

import (
	"github.com/shubham-gund/shooter-game/pkg/components"
	"github.com/shubham-gund/shooter-game/pkg/config"
	"github.com/shubham-gund/shooter-game/pkg/ecs"
)

// RandomSource 随机数来源
// *math/rand/v2.Rand 满足此接口，测试中可注入固定序列
type RandomSource interface {
	// Float64 返回 [0.0, 1.0) 区间的随机数
	Float64() float64
}

// RandomTargetPosition 在游戏区域内生成一个均匀随机的靶子位置
// x ∈ [0, Area.Width-TargetSize)，y ∈ [0, Area.Height-TargetSize)
// 靶子之间不做碰撞检测，允许重叠
func RandomTargetPosition(rng RandomSource, cfg *config.GameConfig) (x, y float64) {
	x = rng.Float64() * cfg.MaxTargetX()
	y = rng.Float64() * cfg.MaxTargetY()
	return x, y
}

// NewTargetEntity 创建一个靶子实体
// 参数:
//   - manager: EntityManager 实例，实体ID即靶子ID
//   - rng: 随机数来源
//   - cfg: 游戏配置（区域尺寸和靶子尺寸）
//   - origin: 生成来源（开局批量或点击后补充）
//   - spawnedAtSecond: 生成时的剩余秒数
//
// 返回: 创建的实体ID
func NewTargetEntity(manager *ecs.EntityManager, rng RandomSource, cfg *config.GameConfig, origin components.TargetOrigin, spawnedAtSecond int) ecs.EntityID {
	id := manager.CreateEntity()

	x, y := RandomTargetPosition(rng, cfg)

	// 添加位置组件（靶子左上角）
	manager.AddComponent(id, &components.PositionComponent{
		X: x,
		Y: y,
	})

	// 添加可点击组件（方形点击区域，与靶子尺寸一致）
	manager.AddComponent(id, &components.ClickableComponent{
		Width:     cfg.TargetSize,
		Height:    cfg.TargetSize,
		IsEnabled: true,
	})

	// 添加靶子组件
	manager.AddComponent(id, &components.TargetComponent{
		Origin:          origin,
		SpawnedAtSecond: spawnedAtSecond,
	})

	return id
}
