// internal/system/projectile.go
package system

import (
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/types"
)

// ProjectileSystem ведёт время жизни и движение снарядов
type ProjectileSystem struct {
	ecs        *entity.Store
	speedScale float64
}

func NewProjectileSystem(ecs *entity.Store) *ProjectileSystem {
	return &ProjectileSystem{ecs: ecs, speedScale: config.ProjectileScale}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	for id, proj := range s.ecs.Projectiles {
		if !proj.Alive {
			s.removeProjectile(id)
			continue
		}
		proj.TTL -= deltaTime
		if proj.TTL < 0 {
			proj.TTL = 0
		}
		proj.Alive = proj.TTL > 0
		if !proj.Alive {
			s.removeProjectile(id)
			continue
		}
		proj.Position = proj.Position.Add(proj.Velocity.Scale(s.speedScale * deltaTime))
	}
}

// Вспомогательная функция для удаления снаряда
func (s *ProjectileSystem) removeProjectile(id types.EntityID) {
	delete(s.ecs.Projectiles, id)
}
