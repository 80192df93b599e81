package ecs

import (
	"context"
	"reflect"
	"strings"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          uint64
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

func (s *systemStatsInternal) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	s.minDuration = min(s.minDuration, d)
	s.maxDuration = max(s.maxDuration, d)
}

type executor interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []executor
	stats   *systemStatsInternal
}

// Scheduler runs registered systems in registration order.
type Scheduler struct {
	storage  *Storage
	systems  []*registeredSystem
	commands *Commands
	frames   uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Register appends a system and binds its Query and Singleton fields.
// The stats name is the system's type name, or name if given.
func (s *Scheduler) Register(system System, name ...string) {
	systemName := systemTypeName(system)
	if len(name) > 0 {
		systemName = name[0]
	}

	s.systems = append(s.systems, &registeredSystem{
		system:  system,
		queries: s.bindFields(system),
		stats: &systemStatsInternal{
			name:        systemName,
			minDuration: time.Duration(1<<63 - 1),
		},
	})
}

func systemTypeName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	// Generic instantiations carry their full type arguments; keep the base name.
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

// bindFields calls Init on every exported Query and Singleton field and returns
// the queries so they can be refreshed before each execution.
func (s *Scheduler) bindFields(system System) []executor {
	value := reflect.ValueOf(system)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	var queries []executor
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()
		isQuery := strings.HasPrefix(typeName, "Query[")
		if !isQuery && !strings.HasPrefix(typeName, "Singleton[") {
			continue
		}

		initMethod := field.Addr().MethodByName("Init")
		if !initMethod.IsValid() {
			panic("Init method not found on field: " + value.Type().Field(i).Name)
		}
		initMethod.Call([]reflect.Value{reflect.ValueOf(s.storage)})

		if isQuery {
			if q, ok := field.Addr().Interface().(executor); ok {
				queries = append(queries, q)
			}
		}
	}
	return queries
}

// Once executes all registered systems once with the given delta time (seconds),
// then flushes the frame's commands.
func (s *Scheduler) Once(dt float64) {
	s.frames++
	frame := &UpdateFrame{
		DeltaTime: dt,
		Number:    s.frames,
		Commands:  s.commands,
		Storage:   s.storage,
	}

	for _, rs := range s.systems {
		start := time.Now()
		for _, q := range rs.queries {
			q.Execute()
		}
		rs.system.Execute(frame)
		rs.stats.record(time.Since(start))
	}

	s.commands.Flush(s.storage)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, rs := range s.systems {
		internal := rs.stats
		var avg time.Duration
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avg = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avg,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}
