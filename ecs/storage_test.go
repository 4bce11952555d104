package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/blockfall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	t.Run("component order does not matter", func(t *testing.T) {
		a := storage.Spawn(Position{Row: 1}, Fall{Rows: 2})
		b := storage.Spawn(Fall{Rows: 3}, Position{Row: 4})

		assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
		assert.NotEqual(t, a.Index(), b.Index())

		assert.Equal(t, 4, ecs.ReadComponent[Position](storage, b).Row)
		assert.Equal(t, 3, ecs.ReadComponent[Fall](storage, b).Rows)
	})

	t.Run("pointers are stored by value", func(t *testing.T) {
		pos := &Position{Row: 7, Col: 8}
		id := storage.Spawn(pos)
		pos.Row = 100

		assert.Equal(t, Position{Row: 7, Col: 8}, *ecs.ReadComponent[Position](storage, id))
	})

	t.Run("primitive components", func(t *testing.T) {
		id := storage.Spawn(Lives(3), Label{Value: "player"})
		require.NotNil(t, ecs.ReadComponent[Lives](storage, id))
		assert.Equal(t, Lives(3), *ecs.ReadComponent[Lives](storage, id))
	})

	t.Run("misuse panics", func(t *testing.T) {
		assert.Panics(t, func() { storage.Spawn() })
		assert.Panics(t, func() { storage.Spawn(Ticks{}) }, "unregistered")
		assert.Panics(t, func() { storage.Spawn(Position{}, Position{}) }, "duplicate")
		assert.Panics(t, func() { storage.Spawn(map[string]int{}) })
	})
}

func TestStorageDelete(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{Row: 1})
	second := storage.Spawn(Position{Row: 2})
	require.True(t, storage.Alive(first))

	storage.Delete(first)
	assert.False(t, storage.Alive(first))
	assert.Nil(t, ecs.ReadComponent[Position](storage, first))
	assert.True(t, storage.Alive(second))

	assert.NotPanics(t, func() { storage.Delete(first) })
	assert.NotPanics(t, func() { storage.Delete(ecs.NewEntityId(12345, 0)) })

	reused := storage.Spawn(Position{Row: 3})
	assert.Equal(t, first, reused, "freed slots are reused")
	assert.Equal(t, 3, ecs.ReadComponent[Position](storage, reused).Row)
}

func TestStorageComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{Row: 5}, Label{Value: "x"})

	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Position]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Fall]()))
	assert.Nil(t, storage.GetComponent(id, reflect.TypeFor[Fall]()))
	assert.Nil(t, ecs.ReadComponent[Fall](storage, id))

	ecs.ReadComponent[Position](storage, id).Row = 6
	assert.Equal(t, 6, ecs.ReadComponent[Position](storage, id).Row, "components are mutable in place")
}

func TestPagedStorageKeepsPointersStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	first := storage.Spawn(Position{Row: 1})
	ptr := ecs.ReadComponent[Position](storage, first)

	for i := range 500 {
		storage.Spawn(Position{Row: i})
	}

	ptr.Col = 42
	assert.Equal(t, 42, ecs.ReadComponent[Position](storage, first).Col)
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var label *Label
	assert.False(t, storage.ReadSingleton(&label))

	storage.AddSingleton(Label{Value: "first"})
	require.True(t, storage.ReadSingleton(&label))
	assert.Equal(t, "first", label.Value)

	storage.AddSingleton(&Label{Value: "second"})
	assert.Equal(t, "second", label.Value, "replacing keeps earlier pointers valid")

	handle := ecs.NewSingleton[Label](storage, Label{Value: "ignored"})
	assert.Equal(t, "second", handle.Get().Value, "an existing singleton is not overwritten")

	handle.Get().Value = "third"
	assert.Equal(t, "third", label.Value)

	assert.Panics(t, func() { storage.ReadSingleton(label) })
}

func TestSingletonHandleResolvesLazily(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var handle ecs.Singleton[Ticks]
	handle.Init(storage)
	assert.False(t, handle.Exists())
	assert.Nil(t, handle.Get())

	storage.AddSingleton(Ticks{Count: 9})
	require.True(t, handle.Exists())
	assert.Equal(t, 9, handle.Get().Count)
}

func TestStorageStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stats := storage.CollectStats()
	assert.Equal(t, 0, stats.ArchetypeCount)
	assert.Equal(t, 0, stats.TotalEntityCount)
	assert.Equal(t, 0, stats.SingletonCount)

	storage.Spawn(Position{}, Label{})
	storage.Spawn(Position{}, Label{})
	doomed := storage.Spawn(Fall{}, Label{})
	storage.Spawn(Fall{}, Label{})
	storage.Delete(doomed)

	ecs.NewSingleton[Ticks](storage)
	ecs.NewSingleton[Lives](storage, 3)

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 2, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Ticks", "ecs_test.Lives"}, stats.SingletonTypes)

	require.Len(t, stats.ArchetypeBreakdown, 2)
	assert.Equal(t, []string{"ecs_test.Label", "ecs_test.Position"}, stats.ArchetypeBreakdown[0].ComponentTypes)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
	assert.Equal(t, 1, stats.ArchetypeBreakdown[1].EntityCount)

	assert.Contains(t, stats.String(), "3 entities in 2 archetypes, 2 singletons")
}
