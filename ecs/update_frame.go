package ecs

// UpdateFrame is what every system receives for one scheduler pass.
type UpdateFrame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
