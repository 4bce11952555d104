package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
)

func NewPerformancePanel(source StatsSource, historyFrames int) PerformancePanel {
	if historyFrames <= 0 {
		historyFrames = 1
	}
	return PerformancePanel{
		source:  source,
		history: make([]float32, historyFrames),
	}
}

// record stores one frame time in milliseconds.
func (p *PerformancePanel) record(deltaTime float32) {
	p.history[p.index] = deltaTime * 1000
	p.index = (p.index + 1) % len(p.history)
	p.filled = min(p.filled+1, len(p.history))
}

// average is the mean frame time in milliseconds over the recorded frames.
func (p *PerformancePanel) average() float32 {
	if p.filled == 0 {
		return 0
	}
	var sum float32
	for _, ft := range p.history[:p.filled] {
		sum += ft
	}
	return sum / float32(p.filled)
}

func (p *PerformancePanel) Render(deltaTime float32) {
	p.record(deltaTime)

	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := p.average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &p.history[0], int32(len(p.history)))

	stats := p.source.Stats()
	storage := p.source.StorageStats()

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Entities: %d in %d archetypes", storage.TotalEntityCount, storage.ArchetypeCount))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, sys := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(sys.LastDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.MaxDuration.String())
		}
		imgui.EndTable()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range storage.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}
