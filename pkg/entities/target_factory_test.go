package entities

import (
	"math/rand/v2"
	"testing"

	"github.com/shubham-gund/shooter-game/pkg/components"
	"github.com/shubham-gund/shooter-game/pkg/config"
	"github.com/shubham-gund/shooter-game/pkg/ecs"
)

// fixedRandom 按顺序返回预设值的随机数来源
type fixedRandom struct {
	values []float64
	next   int
}

func (f *fixedRandom) Float64() float64 {
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

// TestRandomTargetPosition_Bounds 生成的坐标必须保证靶子完整位于区域内
func TestRandomTargetPosition_Bounds(t *testing.T) {
	cfg := config.DefaultGameConfig()
	rng := rand.New(rand.NewPCG(42, 7))

	for i := 0; i < 10000; i++ {
		x, y := RandomTargetPosition(rng, cfg)
		if x < 0 || x > 780 {
			t.Fatalf("x = %v out of [0, 780]", x)
		}
		if y < 0 || y > 380 {
			t.Fatalf("y = %v out of [0, 380]", y)
		}
	}
}

// TestRandomTargetPosition_Extremes 测试随机数边界值的映射
func TestRandomTargetPosition_Extremes(t *testing.T) {
	cfg := config.DefaultGameConfig()

	tests := []struct {
		name         string
		values       []float64
		wantX, wantY float64
	}{
		{"最小值", []float64{0, 0}, 0, 0},
		{"中间值", []float64{0.5, 0.5}, 390, 190},
		{"四分之三", []float64{0.75, 0.75}, 585, 285},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := RandomTargetPosition(&fixedRandom{values: tt.values}, cfg)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("position = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

// TestNewTargetEntity 测试靶子实体组件
func TestNewTargetEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	rng := &fixedRandom{values: []float64{0.25, 0.75}}

	id := NewTargetEntity(em, rng, cfg, components.TargetFromReplacement, 17)

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatal("Target should have PositionComponent")
	}
	if pos.X != 195 || pos.Y != 285 {
		t.Errorf("position = (%v, %v), want (195, 285)", pos.X, pos.Y)
	}

	clickable, ok := ecs.GetComponent[*components.ClickableComponent](em, id)
	if !ok {
		t.Fatal("Target should have ClickableComponent")
	}
	if clickable.Width != 20 || clickable.Height != 20 || !clickable.IsEnabled {
		t.Errorf("clickable = %+v, want enabled 20x20", clickable)
	}

	target, ok := ecs.GetComponent[*components.TargetComponent](em, id)
	if !ok {
		t.Fatal("Target should have TargetComponent")
	}
	if target.Origin != components.TargetFromReplacement || target.SpawnedAtSecond != 17 {
		t.Errorf("target = %+v, want replacement spawned at 17", target)
	}
}

// TestNewTargetEntity_UniqueIDs 连续创建的靶子ID唯一
func TestNewTargetEntity_UniqueIDs(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()
	rng := rand.New(rand.NewPCG(1, 2))

	seen := make(map[ecs.EntityID]bool)
	for i := 0; i < 100; i++ {
		id := NewTargetEntity(em, rng, cfg, components.TargetFromBatch, 30)
		if seen[id] {
			t.Fatalf("duplicate target id %d", id)
		}
		seen[id] = true
	}
}
