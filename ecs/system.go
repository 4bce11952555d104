package ecs

// System is one step of a frame. Exported Query and Singleton fields of a
// system struct are bound to the storage when the system is registered.
type System interface {
	Execute(frame *UpdateFrame)
}
