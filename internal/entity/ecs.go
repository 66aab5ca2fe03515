// internal/entity/ecs.go
package entity

import (
	"sort"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/types"
)

// Store: хранилище сущностей симуляции, по карте на вид компонента
type Store struct {
	GameTime    float64
	NextID      types.EntityID
	Pieces      map[types.EntityID]*component.Piece
	Invaders    map[types.EntityID]*component.Invader
	Projectiles map[types.EntityID]*component.Projectile
}

func NewStore() *Store {
	return &Store{
		NextID:      1,
		Pieces:      make(map[types.EntityID]*component.Piece),
		Invaders:    make(map[types.EntityID]*component.Invader),
		Projectiles: make(map[types.EntityID]*component.Projectile),
	}
}

func (s *Store) NewEntity() types.EntityID {
	id := s.NextID
	s.NextID++
	return id
}

// Clear удаляет все сущности; счётчик идентификаторов не сбрасывается
func (s *Store) Clear() {
	s.GameTime = 0
	clear(s.Pieces)
	clear(s.Invaders)
	clear(s.Projectiles)
}

// SortedIDs возвращает ключи карты по возрастанию.
// Системы обходят сущности в этом порядке, чтобы симуляция была воспроизводимой.
func SortedIDs[T any](m map[types.EntityID]T) []types.EntityID {
	ids := make([]types.EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
