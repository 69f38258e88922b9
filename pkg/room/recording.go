package room

// Recording is the room-wide recording flag. Local toggles flip it
// immediately; remote flips arrive as record/stop-record broadcasts and
// are applied only when the originator is someone else, so the echo of
// our own toggle never double-flips the flag.
type Recording struct {
	active bool
}

func (r *Recording) Active() bool { return r.active }

// Toggle flips the flag for a local action.
func (r *Recording) Toggle() { r.active = !r.active }

// Apply sets the flag from a remote broadcast.
func (r *Recording) Apply(active bool) { r.active = active }
