package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/ecs"
)

type archetypeColumn int

const (
	columnID archetypeColumn = iota
	columnComponents
	columnEntities
)

func NewArchetypePanel(source StatsSource) ArchetypePanel {
	return ArchetypePanel{source: source, column: columnEntities}
}

// refresh reloads the rows from the source and re-sorts them.
func (a *ArchetypePanel) refresh() {
	a.rows = a.source.StorageStats().ArchetypeBreakdown
	sortArchetypes(a.rows, a.column, a.ascending)
}

func sortArchetypes(rows []ecs.ArchetypeStats, column archetypeColumn, ascending bool) {
	slices.SortStableFunc(rows, func(x, y ecs.ArchetypeStats) int {
		var c int
		switch column {
		case columnID:
			c = cmp.Compare(x.ID, y.ID)
		case columnComponents:
			c = cmp.Compare(strings.Join(x.ComponentTypes, ","), strings.Join(y.ComponentTypes, ","))
		default:
			c = cmp.Compare(x.EntityCount, y.EntityCount)
		}
		if !ascending {
			c = -c
		}
		return c
	})
}

func (a *ArchetypePanel) Render() {
	if !imgui.BeginV("Archetypes", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	a.refresh()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		specs := imgui.TableGetSortSpecs()
		if specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			a.column = archetypeColumn(spec.ColumnIndex())
			a.ascending = spec.SortDirection() == imgui.SortDirectionAscending
			sortArchetypes(a.rows, a.column, a.ascending)
			specs.SetSpecsDirty(false)
		}

		for _, row := range a.rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%08X", row.ID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.ComponentTypes, ", "))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.EntityCount))
		}
		imgui.EndTable()
	}

	imgui.End()
}
