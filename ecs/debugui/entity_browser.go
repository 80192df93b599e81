package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/roadrush/ecs"
)

// Labeled components name the entity they belong to in the browser.
type Labeled interface {
	EntityLabel() string
}

type EntityInfo struct {
	ID         ecs.EntityId
	Label      string
	Components []string
}

func (e EntityInfo) matches(filter string) bool {
	if filter == "" {
		return true
	}
	if strings.Contains(strconv.FormatUint(uint64(e.ID), 10), filter) ||
		strings.Contains(strings.ToLower(e.Label), filter) {
		return true
	}
	return slices.ContainsFunc(e.Components, func(name string) bool {
		return strings.Contains(strings.ToLower(name), filter)
	})
}

type browserColumn int

const (
	columnID browserColumn = iota
	columnLabel
	columnComponents
)

// EntityBrowserComponent is a window listing every entity with its label and component types.
type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type EntityBrowserCache struct {
	entities   []EntityInfo
	filtered   []EntityInfo
	sortColumn browserColumn
	descending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache:              &EntityBrowserCache{},
		maxEntitiesPerPage: max(maxEntitiesPerPage, 1),
	}
}

func (eb *EntityBrowserComponent) Render(storage *ecs.Storage) {
	imgui.SetNextWindowPosV(imgui.NewVec2(380, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(520, 360), imgui.CondOnce)

	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	// Enemies spawn and despawn constantly; the listing is rebuilt on every render.
	eb.rebuildCache(storage)

	if imgui.InputTextWithHint("##search", "label, id or component", &eb.filterText, imgui.InputTextFlagsNone, nil) {
		eb.currentPage = 0
	}
	imgui.SameLine()
	if imgui.Button("Clear") {
		eb.SetFilter("")
	}

	rows := eb.page()
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("Entities", 3, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Label")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		if specs := imgui.TableGetSortSpecs(); specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			eb.sortBy(browserColumn(spec.ColumnIndex()), spec.SortDirection() == imgui.SortDirectionDescending)
			specs.SetSpecsDirty(false)
			rows = eb.page()
		}

		for _, entity := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			selected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(strconv.FormatUint(uint64(entity.ID), 10), selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}
			imgui.TableNextColumn()
			imgui.Text(entity.Label)
			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.Components, ", "))
		}
		imgui.EndTable()
	}

	pages := eb.pageCount()
	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, pages, len(eb.cache.filtered)))
	imgui.SameLine()
	if imgui.Button("Prev") && eb.currentPage > 0 {
		eb.currentPage--
	}
	imgui.SameLine()
	if imgui.Button("Next") && eb.currentPage < pages-1 {
		eb.currentPage++
	}

	eb.renderSelected(storage)
	imgui.End()
}

// renderSelected prints every component value of the selected entity.
func (eb *EntityBrowserComponent) renderSelected(storage *ecs.Storage) {
	if eb.selectedEntityId == 0 || !storage.Alive(eb.selectedEntityId) {
		return
	}
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Entity %d", eb.selectedEntityId))
	for _, archetype := range storage.Archetypes() {
		if archetype.ID() != eb.selectedEntityId.ArchetypeId() {
			continue
		}
		for _, t := range archetype.Types() {
			value := archetype.GetComponent(eb.selectedEntityId.Index(), t)
			imgui.TextWrapped(fmt.Sprintf("%s: %+v", t.Name(), value))
		}
	}
}

func (eb *EntityBrowserComponent) rebuildCache(storage *ecs.Storage) {
	eb.cache.entities = eb.cache.entities[:0]

	for _, archetype := range storage.Archetypes() {
		types := archetype.Types()
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.Name()
		}

		for id := range archetype.Iter() {
			info := EntityInfo{ID: id, Components: names}
			for _, t := range types {
				if l, ok := archetype.GetComponent(id.Index(), t).(Labeled); ok {
					info.Label = l.EntityLabel()
					break
				}
			}
			eb.cache.entities = append(eb.cache.entities, info)
		}
	}

	eb.refresh()
}

func (eb *EntityBrowserComponent) sortBy(column browserColumn, descending bool) {
	eb.cache.sortColumn = column
	eb.cache.descending = descending
	eb.refresh()
}

// refresh sorts the entities and reapplies the filter.
func (eb *EntityBrowserComponent) refresh() {
	slices.SortStableFunc(eb.cache.entities, func(a, b EntityInfo) int {
		var c int
		switch eb.cache.sortColumn {
		case columnLabel:
			c = cmp.Compare(a.Label, b.Label)
		case columnComponents:
			c = slices.Compare(a.Components, b.Components)
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		if eb.cache.descending {
			return -c
		}
		return c
	})

	filter := strings.ToLower(strings.TrimSpace(eb.filterText))
	eb.cache.filtered = eb.cache.filtered[:0]
	for _, entity := range eb.cache.entities {
		if entity.matches(filter) {
			eb.cache.filtered = append(eb.cache.filtered, entity)
		}
	}
	eb.currentPage = min(eb.currentPage, eb.pageCount()-1)
}

func (eb *EntityBrowserComponent) pageCount() int {
	return max(1, (len(eb.cache.filtered)+eb.maxEntitiesPerPage-1)/eb.maxEntitiesPerPage)
}

// page returns the filtered entities on the current page.
func (eb *EntityBrowserComponent) page() []EntityInfo {
	start := min(eb.currentPage*eb.maxEntitiesPerPage, len(eb.cache.filtered))
	end := min(start+eb.maxEntitiesPerPage, len(eb.cache.filtered))
	return eb.cache.filtered[start:end]
}

func (eb *EntityBrowserComponent) Selected() ecs.EntityId {
	return eb.selectedEntityId
}

// SetFilter narrows the listing to entities whose ID, label or component names contain text.
func (eb *EntityBrowserComponent) SetFilter(text string) {
	eb.filterText = text
	eb.currentPage = 0
	eb.refresh()
}
