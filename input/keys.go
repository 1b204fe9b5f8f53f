package input

// Key codes. Values match the glfw key tokens so window callbacks can forward
// them unchanged.
const (
	KeyA         uint64 = 65
	KeyD         uint64 = 68
	KeyE         uint64 = 69
	KeyQ         uint64 = 81
	KeyS         uint64 = 83
	KeyW         uint64 = 87
	KeyEscape    uint64 = 256
	KeyRight     uint64 = 262
	KeyLeft      uint64 = 263
	KeyDown      uint64 = 264
	KeyUp        uint64 = 265
	KeyPageUp    uint64 = 266
	KeyPageDown  uint64 = 267
	KeyNumLock   uint64 = 282
	KeyLeftShift uint64 = 340
)

// Mouse buttons.
const (
	ButtonLeft   uint32 = 0
	ButtonRight  uint32 = 1
	ButtonMiddle uint32 = 2
)
