// internal/system/wave.go
package system

import (
	"github.com/charmbracelet/log"

	"go-grid-defense/internal/component"
	"go-grid-defense/internal/config"
	"go-grid-defense/internal/defs"
	"go-grid-defense/internal/entity"
	"go-grid-defense/internal/event"
	"go-grid-defense/internal/types"
	"go-grid-defense/internal/utils"
	"go-grid-defense/pkg/geometry"
	"go-grid-defense/pkg/grid"
)

// WaveSystem: директор волн: формирует пачки захватчиков и выпускает их по одному
type WaveSystem struct {
	ecs             *entity.Store
	grid            *grid.Grid
	library         *defs.Library
	rng             *utils.PRNGService
	eventDispatcher *event.Dispatcher
	logger          *log.Logger
	cfg             config.WaveConfig
	Wave            component.Wave
}

func NewWaveSystem(ecs *entity.Store, g *grid.Grid, library *defs.Library, rng *utils.PRNGService, eventDispatcher *event.Dispatcher, logger *log.Logger, cfg config.WaveConfig) *WaveSystem {
	if cfg.MaxInvaderLevel < 1 {
		cfg.MaxInvaderLevel = 1
	}
	return &WaveSystem{
		ecs:             ecs,
		grid:            g,
		library:         library,
		rng:             rng,
		eventDispatcher: eventDispatcher,
		logger:          logger,
		cfg:             cfg,
		Wave:            component.Wave{InvaderLevel: 1},
	}
}

// Reset возвращает директор в начальное состояние
func (s *WaveSystem) Reset() {
	s.Wave = component.Wave{InvaderLevel: 1}
}

// GenerateWave ставит в очередь BatchSize захватчиков текущего уровня и повышает уровень.
// После максимального уровня возвращает пустую пачку.
func (s *WaveSystem) GenerateWave() []component.Spawn {
	w := &s.Wave
	if w.SentAllInvaders {
		return nil
	}
	keys := s.keysWithEntrances()
	if len(keys) == 0 {
		s.logger.Warn("no entrances, wave skipped", "level", w.InvaderLevel)
		return nil
	}

	t := 0.0
	if s.cfg.MaxInvaderLevel > 1 {
		t = float64(w.InvaderLevel-1) / float64(s.cfg.MaxInvaderLevel-1)
	}
	ids, weights := s.eligible(w.InvaderLevel)

	batch := make([]component.Spawn, 0, s.cfg.BatchSize)
	for i := 0; i < s.cfg.BatchSize && len(ids) > 0; i++ {
		def := s.library.Invaders[ids[s.rng.ChooseWeighted(weights)]]
		key := keys[s.rng.Intn(len(keys))]
		entrances := s.grid.Entrances[key]
		sample := def.SampleAt(t)

		var flags component.InvaderFlags
		if def.SlowResistant {
			flags |= component.SlowResistant
		}
		if def.FireResistant {
			flags |= component.FireResistant
		}
		batch = append(batch, component.Spawn{
			DefID:    def.ID,
			Key:      key,
			Entrance: entrances[s.rng.Intn(len(entrances))],
			Level:    w.InvaderLevel,
			Life:     sample.Life,
			Speed:    sample.Speed,
			Bounty:   sample.Bounty,
			Flags:    flags,
		})
	}

	if len(w.Queue) == 0 {
		w.SpawnTimer = 0
	}
	w.Queue = append(w.Queue, batch...)
	w.Generated++
	w.SinceLastWave = 0
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveGenerated, Data: event.WaveData{Level: w.InvaderLevel, Count: len(batch)}})
	s.logger.Info("wave generated", "level", w.InvaderLevel, "count", len(batch))

	w.InvaderLevel++
	if w.InvaderLevel > s.cfg.MaxInvaderLevel {
		w.InvaderLevel = s.cfg.MaxInvaderLevel
		w.SentAllInvaders = true
	}
	return batch
}

// eligible: захватчики, доступные на уровне, в порядке библиотеки
func (s *WaveSystem) eligible(level int) ([]string, []int) {
	var ids []string
	var weights []int
	for _, id := range s.library.InvaderOrder {
		def := s.library.Invaders[id]
		if def.MinLevel > level {
			continue
		}
		ids = append(ids, id)
		weights = append(weights, def.Weight)
	}
	return ids, weights
}

func (s *WaveSystem) keysWithEntrances() []grid.Key {
	var keys []grid.Key
	for k := grid.Key(0); k < grid.KeyCount; k++ {
		if len(s.grid.Entrances[k]) > 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

func (s *WaveSystem) Update(deltaTime float64) {
	w := &s.Wave
	if len(w.Queue) > 0 {
		w.SpawnTimer -= deltaTime
		for w.SpawnTimer <= 0 && len(w.Queue) > 0 {
			s.Spawn(w.Queue[0])
			w.Queue = w.Queue[1:]
			w.SpawnTimer += s.cfg.SpawnInterval
			if s.cfg.SpawnInterval <= 0 {
				w.SpawnTimer = 0
			}
		}
		return
	}
	if s.cfg.AutoWaveInterval > 0 && !w.SentAllInvaders {
		w.SinceLastWave += deltaTime
		if w.SinceLastWave >= s.cfg.AutoWaveInterval {
			s.GenerateWave()
		}
	}
}

// Spawn выпускает захватчика за клеткой входа
func (s *WaveSystem) Spawn(sp component.Spawn) types.EntityID {
	id := s.ecs.NewEntity()
	dx, dy := sp.Key.ExitAxis()
	axis := geometry.Pt(float64(dx), float64(dy))
	anchor := s.grid.Anchor(sp.Entrance)
	s.ecs.Invaders[id] = &component.Invader{
		DefID:       sp.DefID,
		Key:         sp.Key,
		Level:       sp.Level,
		Life:        sp.Life,
		MaxLife:     sp.Life,
		Speed:       sp.Speed,
		Bounty:      sp.Bounty,
		Flags:       sp.Flags,
		Position:    anchor.Sub(axis.Scale(s.grid.CellSize)),
		Angle:       axis.Angle(),
		TargetAngle: axis.Angle(),
		Current:     grid.NoCell,
		Target:      sp.Entrance,
		State:       component.InvaderAlive,
	}
	s.Wave.Spawned++
	s.Wave.Active++
	s.eventDispatcher.Dispatch(event.Event{Type: event.InvaderSpawned, Data: event.InvaderData{ID: id, DefID: sp.DefID, Key: sp.Key, Bounty: sp.Bounty}})
	return id
}

// ReportBackIn учитывает захватчика, покинувшего поле
func (s *WaveSystem) ReportBackIn(id types.EntityID, state component.InvaderState) {
	w := &s.Wave
	switch state {
	case component.InvaderMadeIt:
		w.MadeIt++
	case component.InvaderDead:
		w.Destroyed++
	default:
		return
	}
	if w.Active > 0 {
		w.Active--
	}
}

// Finished: все волны выпущены и все захватчики выбыли
func (s *WaveSystem) Finished() bool {
	w := &s.Wave
	return w.SentAllInvaders && len(w.Queue) == 0 && w.Active == 0
}
