package ecs

import "unsafe"

// iface mirrors the runtime layout of a non-empty interface value. It lets the
// kernel pull the data pointer out of an `any` holding a *T without
// reflection.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
