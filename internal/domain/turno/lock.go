package turno

import "context"

// SlotLocker serializes reservations of the same slot. The returned release
// func must be called exactly once.
type SlotLocker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// SlotKey identifies a slot for locking.
func SlotKey(modalidad, fecha, hora string) string {
	return SlotModalidad(modalidad) + "|" + fecha + "|" + hora
}
