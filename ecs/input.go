package ecs

// TouchPhase distinguishes new touches from held and lifted ones.
type TouchPhase int

const (
	TouchBegan TouchPhase = iota
	TouchMoved
	TouchEnded
)

// KeyState carries a key's level state plus its rising edge for this frame.
type KeyState struct {
	Pressed          bool
	PressedThisFrame bool
}

// Pointer is a touch position in normalized [0,1] screen space.
type Pointer struct {
	X, Y  float64
	Phase TouchPhase
}

// MouseState is the cursor position in normalized [0,1] screen space.
// Present is false on hosts without a pointing device.
type MouseState struct {
	Present bool
	X, Y    float64
}

// CameraState is the camera pose for screen-to-world projection: where the
// camera sits, the point it looks at, and its vertical field of view in
// radians. The up direction is implied world-up.
type CameraState struct {
	PosX, PosY, PosZ    float64
	LookX, LookY, LookZ float64
	Fov                 float64
}

// Input is the per-frame input snapshot the host fills in before stepping the
// scheduler. Systems read it through a Singleton and never talk to the host
// directly.
type Input struct {
	Confirm KeyState
	Mouse   MouseState
	Touches []Pointer
	Camera  CameraState

	// Viewport dimensions, for screen-to-world projection.
	AspectX, AspectY float64
}
