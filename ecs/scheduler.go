package ecs

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// System advances the world by dt seconds.
type System interface {
	Update(w *World, dt float64) error
}

// Scheduler runs systems in the fixed order they were added.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system once, stopping at the first error.
func (s *Scheduler) Update(w *World, dt float64) error {
	for _, system := range s.systems {
		if err := system.Update(w, dt); err != nil {
			return eris.Wrapf(err, "system %s failed", systemName(system))
		}
	}
	return nil
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

func systemName(system System) string {
	if n, ok := system.(fmt.Stringer); ok {
		return n.String()
	}
	return fmt.Sprintf("%T", system)
}
