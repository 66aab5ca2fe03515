package system

import (
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/interfaces"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geometry"
)

// fallbackHalfSize: половина стороны квадрата для спрайтов без оболочки
const fallbackHalfSize = 4.0

// CombatSystem проверяет попадания снарядов по оболочкам захватчиков
type CombatSystem struct {
	ecs       *entity.Store
	library   *defs.Library
	resources interfaces.ResourceProvider
	shapes    map[types.EntityID]*geometry.Shape
}

func NewCombatSystem(ecs *entity.Store, library *defs.Library, resources interfaces.ResourceProvider) *CombatSystem {
	return &CombatSystem{
		ecs:       ecs,
		library:   library,
		resources: resources,
		shapes:    make(map[types.EntityID]*geometry.Shape),
	}
}

func (s *CombatSystem) Update(deltaTime float64) {
	invaderIDs := entity.SortedIDs(s.ecs.Invaders)
	hulls := make([]geometry.Polygon, len(invaderIDs))
	for i, id := range invaderIDs {
		inv := s.ecs.Invaders[id]
		scale := 1.0
		sprite := ""
		if def, ok := s.library.Invader(inv.DefID); ok {
			scale = def.Visuals.SpriteScale()
			sprite = def.Visuals.Sprite
		}
		hulls[i] = s.shape(id, sprite).At(inv.Position, inv.Angle, scale)
	}

	for _, pid := range entity.SortedIDs(s.ecs.Projectiles) {
		proj := s.ecs.Projectiles[pid]
		if !proj.Alive {
			continue
		}
		ph := s.shape(pid, proj.Sprite).At(proj.Position, proj.Angle, 1)
		for i, iid := range invaderIDs {
			inv := s.ecs.Invaders[iid]
			if !inv.Alive() || inv.Life <= 0 {
				continue
			}
			// Широкая фаза по боксам, затем точная проверка оболочек
			if !ph.Bounds.Overlaps(hulls[i].Bounds) || !geometry.Intersects(ph, hulls[i]) {
				continue
			}
			ApplyDamage(inv, proj.Attack)
			proj.Alive = false
			proj.TTL = 0
			break
		}
	}
	s.prune()
}

// Hull возвращает оболочку сущности в мировых координатах, если она известна
func (s *CombatSystem) Hull(id types.EntityID) (geometry.Polygon, bool) {
	if inv, ok := s.ecs.Invaders[id]; ok {
		scale := 1.0
		sprite := ""
		if def, ok := s.library.Invader(inv.DefID); ok {
			scale = def.Visuals.SpriteScale()
			sprite = def.Visuals.Sprite
		}
		return s.shape(id, sprite).At(inv.Position, inv.Angle, scale), true
	}
	if proj, ok := s.ecs.Projectiles[id]; ok {
		return s.shape(id, proj.Sprite).At(proj.Position, proj.Angle, 1), true
	}
	return geometry.Polygon{}, false
}

// shape: кэшированная форма сущности, создаётся при первом обращении
func (s *CombatSystem) shape(id types.EntityID, sprite string) *geometry.Shape {
	if sh, ok := s.shapes[id]; ok {
		return sh
	}
	var sh *geometry.Shape
	if fi, ok := s.lookup(sprite); ok && !fi.Hull.Empty() {
		sh = geometry.NewShape(fi.Hull, fi.FrameSize.Scale(0.5))
	} else {
		box := []geometry.Point{
			{X: 0, Y: 0}, {X: 2 * fallbackHalfSize, Y: 0},
			{X: 2 * fallbackHalfSize, Y: 2 * fallbackHalfSize}, {X: 0, Y: 2 * fallbackHalfSize},
		}
		sh = geometry.NewShape(geometry.NewPolygon(box), geometry.Pt(fallbackHalfSize, fallbackHalfSize))
	}
	s.shapes[id] = sh
	return sh
}

func (s *CombatSystem) lookup(sprite string) (interfaces.FramedImage, bool) {
	if s.resources == nil || sprite == "" {
		return interfaces.FramedImage{}, false
	}
	return s.resources.GetFramedImage(sprite)
}

// prune удаляет формы сущностей, которых больше нет
func (s *CombatSystem) prune() {
	for id := range s.shapes {
		_, isInvader := s.ecs.Invaders[id]
		_, isProjectile := s.ecs.Projectiles[id]
		if !isInvader && !isProjectile {
			delete(s.shapes, id)
		}
	}
}

// Reset забывает все кэшированные формы
func (s *CombatSystem) Reset() {
	clear(s.shapes)
}
