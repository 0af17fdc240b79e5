package ecs

import "testing"

// 测试组件类型定义
type testGaugeComponent struct {
	Value float64
}

type testLampComponent struct {
	On bool
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}

	if em.EntityCount() != 2 {
		t.Errorf("EntityCount: got %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testGaugeComponent{Value: 42})

	gauge, ok := GetComponent[*testGaugeComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if gauge.Value != 42 {
		t.Errorf("Component data mismatch, expected 42, got %f", gauge.Value)
	}

	// 组件以指针存储，修改对后续查询可见
	gauge.Value = 7
	again, _ := GetComponent[*testGaugeComponent](em, id)
	if again.Value != 7 {
		t.Errorf("expected mutation to be visible, got %f", again.Value)
	}
}

func TestHasAndRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if HasComponent[*testLampComponent](em, id) {
		t.Error("Entity should not have lamp component yet")
	}

	AddComponent(em, id, &testLampComponent{On: true})
	if !HasComponent[*testLampComponent](em, id) {
		t.Error("Entity should have lamp component")
	}

	RemoveComponent[*testLampComponent](em, id)
	if HasComponent[*testLampComponent](em, id) {
		t.Error("Lamp component should be removed")
	}
}

func TestComponentOnMissingEntity(t *testing.T) {
	em := NewEntityManager()

	// 对不存在的实体操作应安全返回
	AddComponent(em, 99, &testGaugeComponent{})
	if _, ok := GetComponent[*testGaugeComponent](em, 99); ok {
		t.Error("missing entity should not return a component")
	}
	if em.Exists(99) {
		t.Error("missing entity should not exist")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	AddComponent(em, id, &testGaugeComponent{})

	em.DestroyEntity(id)

	// 标记后尚未删除
	if !em.Exists(id) {
		t.Error("Entity should still exist before RemoveMarkedEntities")
	}

	em.RemoveMarkedEntities()

	if em.Exists(id) {
		t.Error("Entity should be removed")
	}
	if HasComponent[*testGaugeComponent](em, id) {
		t.Error("Components of removed entity should be gone")
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	both := em.CreateEntity()
	AddComponent(em, both, &testGaugeComponent{})
	AddComponent(em, both, &testLampComponent{})

	gaugeOnly := em.CreateEntity()
	AddComponent(em, gaugeOnly, &testGaugeComponent{})

	em.CreateEntity() // 无组件

	gauges := GetEntitiesWith1[*testGaugeComponent](em)
	if len(gauges) != 2 {
		t.Fatalf("expected 2 gauge entities, got %d", len(gauges))
	}
	if gauges[0] != both || gauges[1] != gaugeOnly {
		t.Errorf("expected ascending order [%d %d], got %v", both, gaugeOnly, gauges)
	}

	pairs := GetEntitiesWith2[*testGaugeComponent, *testLampComponent](em)
	if len(pairs) != 1 || pairs[0] != both {
		t.Errorf("expected only entity %d, got %v", both, pairs)
	}

	none := GetEntitiesWith3[*testGaugeComponent, *testLampComponent, *testGaugeComponent](em)
	if len(none) != 1 {
		t.Errorf("duplicate types should still match, got %v", none)
	}
}
