package renderer

import "github.com/achilleasa/pray/display"

type Renderer interface {
	// Render a single frame advancing the simulation by dt milliseconds.
	Tick(dt float32) error

	// Shutdown renderer and release scene resources.
	Close()

	// Get render statistics for the last frame.
	Stats() FrameStats
}

// Window is the display subsystem driven by the interactive loop.
type Window interface {
	display.Presenter

	// Process pending window events.
	PollEvents()

	// Check whether the window should close.
	ShouldClose() bool

	// Toggle cursor lock and return the new lock state.
	ToggleCursorLock() bool

	// Move the cursor.
	SetCursorPos(x, y float64)
}
