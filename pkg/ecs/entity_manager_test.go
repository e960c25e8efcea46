package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testHitboxComponent struct {
	Size float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// ID从1开始，0保留为无效ID
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
	if em.HasComponent(InvalidEntity, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("InvalidEntity should never have components")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)

	// 清理前实体仍存在
	if em.EntityCount() != 1 || !HasComponent[*testPositionComponent](em, id) {
		t.Error("Entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()
	if em.EntityCount() != 0 {
		t.Error("Entity should be removed after cleanup")
	}
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Removed entity should not report components")
	}
}

func TestDestroyAllKeepsIDCounter(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 5; i++ {
		em.CreateEntity()
	}

	em.DestroyAll()
	em.RemoveMarkedEntities()

	if em.EntityCount() != 0 {
		t.Fatalf("EntityCount after DestroyAll = %d, want 0", em.EntityCount())
	}

	// 清空后ID不复用
	next := em.CreateEntity()
	if next != 6 {
		t.Errorf("ID after DestroyAll = %d, want 6", next)
	}
}

func TestGetEntitiesWithOrder(t *testing.T) {
	em := NewEntityManager()

	var want []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{X: float64(i)})
		if i%3 != 0 {
			em.AddComponent(id, &testHitboxComponent{Size: 20})
			want = append(want, id)
		}
	}

	got := GetEntitiesWith2[*testPositionComponent, *testHitboxComponent](em)
	if len(got) != len(want) {
		t.Fatalf("got %d entities, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entity[%d] = %d, want %d (results must be ordered by ID)", i, got[i], want[i])
		}
	}

	if n := len(GetEntitiesWith1[*testPositionComponent](em)); n != 20 {
		t.Errorf("Position query returned %d entities, want 20", n)
	}
}

func TestGenericGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{X: 10, Y: 20})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Position component should be found")
	}
	if pos.X != 10 || pos.Y != 20 {
		t.Errorf("Position = (%v, %v), want (10, 20)", pos.X, pos.Y)
	}

	if _, ok := GetComponent[*testHitboxComponent](em, id); ok {
		t.Error("Hitbox component should not be found")
	}
	if HasComponent[*testHitboxComponent](em, id) {
		t.Error("HasComponent should be false for missing component")
	}
	if _, ok := GetComponent[*testPositionComponent](em, 999); ok {
		t.Error("Unknown entity should not return components")
	}
}
