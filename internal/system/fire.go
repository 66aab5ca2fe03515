// internal/system/fire.go
package system

import (
	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/types"
	"go-grid-defense/pkg/geometry"
)

// Shot: всё, что нужно стратегии для одного выстрела
type Shot struct {
	PieceID  types.EntityID
	Piece    *component.Piece
	Stats    defs.FireStats
	Origin   geometry.Point
	TargetID types.EntityID
	Target   *component.Invader
	CellSize float64
}

// FireStrategy: поведение выстрела, выбираемое по defs.FireKind
type FireStrategy interface {
	Fire(ecs *entity.Store, shot Shot)
}

// DefaultStrategies возвращает стратегии для всех известных видов стрельбы
func DefaultStrategies() map[defs.FireKind]FireStrategy {
	return map[defs.FireKind]FireStrategy{
		defs.FireBolt: BoltStrategy{},
		defs.FireLead: LeadStrategy{},
		defs.FireArc:  ArcStrategy{},
	}
}

// BoltStrategy стреляет прямо в текущую позицию цели
type BoltStrategy struct{}

func (BoltStrategy) Fire(ecs *entity.Store, shot Shot) {
	dir := shot.Target.Position.Sub(shot.Origin).Normalize()
	spawnProjectile(ecs, shot, dir)
}

// LeadStrategy стреляет с упреждением; если попасть нельзя, стреляет как BoltStrategy
type LeadStrategy struct{}

func (LeadStrategy) Fire(ecs *entity.Store, shot Shot) {
	dir, ok := ComputeInterceptDirection(shot.Origin, shot.Stats.Speed*config.ProjectileScale, shot.Target.Position, shot.Target.Velocity)
	if !ok {
		dir = shot.Target.Position.Sub(shot.Origin).Normalize()
	}
	spawnProjectile(ecs, shot, dir)
}

// ArcStrategy мгновенно бьёт всех живых захватчиков в радиусе и запускает анимацию разряда
type ArcStrategy struct{}

func (ArcStrategy) Fire(ecs *entity.Store, shot Shot) {
	radius := shot.Stats.Radius * shot.CellSize
	if radius <= 0 {
		radius = shot.Stats.Range * shot.CellSize
	}
	r2 := radius * radius
	for _, id := range entity.SortedIDs(ecs.Invaders) {
		inv := ecs.Invaders[id]
		if !inv.Alive() || inv.Position.Sub(shot.Origin).LenSq() > r2 {
			continue
		}
		ApplyDamage(inv, shot.Stats.Attack)
	}
	shot.Piece.Discharge.Start(shot.Stats.Frames, shot.Stats.FrameDuration)
}

func spawnProjectile(ecs *entity.Store, shot Shot, dir geometry.Point) {
	if dir.LenSq() == 0 {
		return
	}
	id := ecs.NewEntity()
	ecs.Projectiles[id] = &component.Projectile{
		SourceID: shot.PieceID,
		Position: shot.Origin,
		Velocity: dir.Scale(shot.Stats.Speed),
		Angle:    dir.Angle(),
		TTL:      shot.Stats.TTL,
		Attack:   shot.Stats.Attack,
		Alive:    shot.Stats.TTL > 0,
		Sprite:   shot.Stats.Sprite,
	}
}

// ApplyDamage уменьшает жизнь захватчика, не опуская её ниже нуля.
// Переход в Dead выполняет система движения на следующем тике.
func ApplyDamage(inv *component.Invader, attack float64) {
	if attack <= 0 {
		return
	}
	inv.Life -= attack
	if inv.Life < 0 {
		inv.Life = 0
	}
}
