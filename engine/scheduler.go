package engine

import (
	"context"
	"log"
	"math"
	"reflect"
	"sync"
	"time"

	"github.com/plus3/ember/clock"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Ticks           int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs systems in order against a World and flushes queued
// commands once all of them have run.
type Scheduler struct {
	world    *World
	commands *Commands
	logger   *log.Logger

	mu          sync.Mutex
	systems     []System
	systemStats []*systemStatsInternal
	ticks       int64
}

// NewScheduler creates a scheduler for world. A nil logger uses log.Default().
func NewScheduler(world *World, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		world:    world,
		commands: newCommands(),
		logger:   logger,
	}
}

// Register appends a system.
func (s *Scheduler) Register(system System) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(math.MaxInt64),
	})
}

// Commands returns the buffer flushed after every tick. Edits queued from
// other goroutines are picked up by the next flush.
func (s *Scheduler) Commands() *Commands {
	return s.commands
}

// Once runs every system once at the clock's current reading, then applies
// queued commands.
func (s *Scheduler) Once(clk clock.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := &Frame{
		Clock:    clk,
		DeltaSec: clk.DeltaSec(),
		World:    s.world,
		Commands: s.commands,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
	s.ticks++

	if err := s.commands.Flush(s.world); err != nil {
		s.logger.Printf("[Engine] Warning: %v", err)
	}
}

// Run advances src and executes all systems at the given interval until the
// context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, src clock.Source) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			src.Tick()
			s.Once(src)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.ticks,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
