package input

type Event interface{}

type KeyPress struct {
	Code  uint64
	Label string
}
type KeyRelease struct {
	Code  uint64
	Label string
}
type ButtonPress struct {
	Button uint32
	X, Y   int
}
type ButtonRelease struct {
	Button uint32
	X, Y   int
}

// Cursor movement. DX and DY hold the displacement from the previous
// reported position.
type MotionNotify struct {
	X, Y   int
	DX, DY float64
}
type MouseWheel struct {
	DeltaX float64
	DeltaY float64
	X, Y   int
}
