package debugui

import "github.com/plus3/blockfall/ecs"

// RegisterDebugUIComponents registers every component this package spawns.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[PerformancePanel](registry)
	ecs.RegisterComponent[ArchetypePanel](registry)
}

// SpawnDebugUI adds the built-in panels for source and registers the systems
// that draw them.
func SpawnDebugUI(storage *ecs.Storage, scheduler *ecs.Scheduler, source StatsSource) {
	ecs.NewSingleton[ImguiInputState](storage)

	storage.Spawn(NewPerformancePanel(source, 120))
	storage.Spawn(NewArchetypePanel(source))

	scheduler.Register(&ImguiSystem{})
	scheduler.Register(&PanelSystem{})
}
