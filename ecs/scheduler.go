package ecs

import (
	"context"
	"math"
	"reflect"
	"time"
)

// storageBound is implemented by Query and Singleton fields; the scheduler
// initializes them when the owning system is registered.
type storageBound interface {
	Init(storage *Storage)
}

// frameCached is implemented by Query fields; the scheduler re-executes them
// immediately before their system runs each frame.
type frameCached interface {
	Execute()
}

type systemStats struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// SystemStats is a snapshot of one system's execution timings.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// Scheduler runs systems once per tick in registration order and flushes the
// frame's commands at the end, so structural changes land at the frame
// boundary.
type Scheduler struct {
	storage *Storage
	systems []System
	queries [][]frameCached
	stats   []*systemStats
}

func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register adds a system and wires up its Query and Singleton fields.
// Systems must be registered as pointers so their fields are addressable.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)
	s.queries = append(s.queries, s.bindFields(system))

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.stats = append(s.stats, &systemStats{
		name:        systemType.Name(),
		minDuration: time.Duration(math.MaxInt64),
	})
}

func (s *Scheduler) bindFields(system System) []frameCached {
	value := reflect.ValueOf(system)
	if value.Kind() != reflect.Ptr {
		return nil
	}
	value = value.Elem()
	if value.Kind() != reflect.Struct {
		return nil
	}

	var queries []frameCached
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if field.Kind() != reflect.Struct || !field.CanAddr() || !field.CanSet() {
			continue
		}

		addr := field.Addr().Interface()
		bound, ok := addr.(storageBound)
		if !ok {
			continue
		}
		bound.Init(s.storage)

		if query, ok := addr.(frameCached); ok {
			queries = append(queries, query)
		}
	}

	return queries
}

// Once executes all systems with the given delta time in seconds.
func (s *Scheduler) Once(dt float64) {
	frame := newFrame(dt, s.storage)

	for i, system := range s.systems {
		for _, query := range s.queries[i] {
			query.Execute()
		}

		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.stats[i]
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

	frame.Commands.Flush(s.storage)
}

// Run ticks the scheduler at a fixed interval until the context is canceled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Stats returns a snapshot of per-system execution statistics.
func (s *Scheduler) Stats() *SchedulerStats {
	result := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, 0, len(s.stats)),
	}

	for _, stats := range s.stats {
		snapshot := SystemStats{
			Name:           stats.name,
			ExecutionCount: stats.executionCount,
			MaxDuration:    stats.maxDuration,
			LastDuration:   stats.lastDuration,
			TotalDuration:  stats.totalDuration,
		}
		if stats.executionCount > 0 {
			snapshot.MinDuration = stats.minDuration
			snapshot.AvgDuration = stats.totalDuration / time.Duration(stats.executionCount)
		}
		result.TotalExecutions += stats.executionCount
		result.Systems = append(result.Systems, snapshot)
	}

	return result
}
