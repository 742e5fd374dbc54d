package ecs

// System is a per-frame behavior. Systems are structs whose Query and
// Singleton fields the scheduler wires up at registration time; any other
// fields are ordinary state that persists between frames.
type System interface {
	Execute(frame *Frame)
}

// Frame carries the per-tick inputs every system receives.
type Frame struct {
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newFrame(dt float64, storage *Storage) *Frame {
	return &Frame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
