package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/roadrush/ecs"
)

// PerformanceStatsComponent is a window showing world counts, recent frame
// times and per-system timings.
type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32 // ms, ring buffer
	frameIndex    int
	recorded      int
}

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	if historyFrames <= 0 {
		historyFrames = 1
	}
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record appends one frame's delta time, in seconds, to the history ring.
func (ps *PerformanceStatsComponent) Record(deltaTime float32) {
	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	ps.recorded = min(ps.recorded+1, ps.historyFrames)
}

// AverageFrameTime returns the mean of the recorded frame times in milliseconds.
func (ps *PerformanceStatsComponent) AverageFrameTime() float32 {
	if ps.recorded == 0 {
		return 0
	}
	var total float32
	for _, ft := range ps.frameHistory {
		total += ft
	}
	return total / float32(ps.recorded)
}

// History returns the recorded frame times in milliseconds, oldest first.
func (ps *PerformanceStatsComponent) History() []float32 {
	out := make([]float32, 0, ps.recorded)
	start := (ps.frameIndex - ps.recorded + ps.historyFrames) % ps.historyFrames
	for i := range ps.recorded {
		out = append(out, ps.frameHistory[(start+i)%ps.historyFrames])
	}
	return out
}

func (ps *PerformanceStatsComponent) Render(storage *ecs.Storage, schedulerStats *ecs.SchedulerStats) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 320), imgui.CondOnce)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avgFrameTime := ps.AverageFrameTime()
	fps := float32(0)
	if avgFrameTime > 0 {
		fps = 1000.0 / avgFrameTime
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, fps))

	imgui.Separator()
	if samples := ps.History(); len(samples) > 0 {
		if implot.BeginPlotV("Frame Time", imgui.NewVec2(-1, 140), 0) {
			implot.SetupAxesV("Frame", "ms", 0, implot.AxisFlagsAutoFit)
			implot.PlotLineFloatPtrInt("dt", &samples[0], int32(len(samples)))
			implot.EndPlot()
		}
	}

	if schedulerStats != nil && imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Name")
			imgui.TableSetupColumn("Avg (ms)")
			imgui.TableSetupColumn("Max (ms)")
			imgui.TableSetupColumn("Runs")
			imgui.TableHeadersRow()

			for _, sys := range schedulerStats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.AvgDuration.Microseconds())/1000.0))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.3f", float64(sys.MaxDuration.Microseconds())/1000.0))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Archetype ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}
