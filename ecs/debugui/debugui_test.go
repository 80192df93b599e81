package debugui

import (
	"testing"

	"github.com/plus3/roadrush/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marker struct{ Name string }

func TestPerformanceStatsAverage(t *testing.T) {
	ps := NewPerformanceStatsComponent(4)
	assert.Zero(t, ps.AverageFrameTime())

	ps.Record(0.010)
	ps.Record(0.020)
	assert.InDelta(t, 15.0, ps.AverageFrameTime(), 0.001)

	// Overflowing the ring keeps only the newest samples.
	for range 4 {
		ps.Record(0.005)
	}
	assert.InDelta(t, 5.0, ps.AverageFrameTime(), 0.001)
	assert.Equal(t, 2, ps.frameIndex)
}

func TestPerformanceStatsHistoryOrder(t *testing.T) {
	ps := NewPerformanceStatsComponent(3)
	assert.Empty(t, ps.History())

	ps.Record(0.001)
	ps.Record(0.002)
	assert.InDeltaSlice(t, []float32{1, 2}, ps.History(), 0.001)

	ps.Record(0.003)
	ps.Record(0.004)
	assert.InDeltaSlice(t, []float32{2, 3, 4}, ps.History(), 0.001)
}

func (m marker) EntityLabel() string { return m.Name }

func TestEntityBrowserListing(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[marker](registry)
	RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)

	first := storage.Spawn(marker{Name: "player"})
	storage.Spawn(marker{Name: "enemy0"})
	storage.Spawn(ImguiItem{})

	browser := NewEntityBrowserComponent(10)
	browser.rebuildCache(storage)
	require.Len(t, browser.page(), 3)

	browser.SetFilter("marker")
	require.Len(t, browser.page(), 2)

	browser.SetFilter("ENEMY")
	require.Len(t, browser.page(), 1)
	assert.Equal(t, "enemy0", browser.page()[0].Label)

	storage.Delete(first)
	browser.SetFilter("")
	browser.rebuildCache(storage)
	assert.Len(t, browser.page(), 2)
}

func TestEntityBrowserSortAndPaging(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[marker](registry)
	storage := ecs.NewStorage(registry)
	for _, name := range []string{"c", "a", "e", "b", "d"} {
		storage.Spawn(marker{Name: name})
	}

	browser := NewEntityBrowserComponent(2)
	browser.rebuildCache(storage)
	browser.sortBy(columnLabel, false)

	assert.Equal(t, 3, browser.pageCount())
	labels := func() []string {
		var out []string
		for _, e := range browser.page() {
			out = append(out, e.Label)
		}
		return out
	}
	assert.Equal(t, []string{"a", "b"}, labels())

	browser.currentPage = 2
	assert.Equal(t, []string{"e"}, labels())

	browser.sortBy(columnLabel, true)
	browser.currentPage = 0
	assert.Equal(t, []string{"e", "d"}, labels())

	// Filtering shrinks the page count and clamps the current page.
	browser.currentPage = 2
	browser.filterText = "d"
	browser.refresh()
	assert.Equal(t, 0, browser.currentPage)
	assert.Equal(t, []string{"d"}, labels())
}

func TestDebugWindowSystemRecordsFrames(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)
	storage.Spawn(NewPerformanceStatsComponent(8))

	view := ecs.NewView[struct{ *PerformanceStatsComponent }](storage)
	var stats *PerformanceStatsComponent
	for item := range view.Values() {
		stats = item.PerformanceStatsComponent
	}
	require.NotNil(t, stats)

	// Run the system body directly; the deferred renders need an ImGui context
	// and are discarded instead of flushed.
	system := NewDebugWindowSystem(nil)
	system.Stats.Init(storage)
	system.Browsers.Init(storage)
	system.Stats.Execute()
	system.Browsers.Execute()

	frame := &ecs.UpdateFrame{DeltaTime: 0.016, Commands: &ecs.Commands{}, Storage: storage}
	system.Execute(frame)

	assert.Equal(t, 1, stats.recorded)
	assert.Equal(t, 1, frame.Commands.Pending())
}
