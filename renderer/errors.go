package renderer

import "errors"

var (
	ErrSceneNotDefined          = errors.New("renderer: no scene defined")
	ErrNoAccelerator            = errors.New("renderer: no accelerator attached")
	ErrNoDisplay                = errors.New("renderer: no display attached")
	ErrTickReentered            = errors.New("renderer: tick invoked while another tick is in progress")
	ErrInvalidAALevel           = errors.New("renderer: AA sub-rays must be one of 1, 4, 9 or 16")
	ErrInvalidTransparencyDepth = errors.New("renderer: transparency depth must be in the range [1, 4]")
	ErrInvalidFrameSize         = errors.New("renderer: invalid frame size")
	ErrInvalidMaxDistance       = errors.New("renderer: max view distances must be positive")
	ErrLayoutMismatch           = errors.New("renderer: accelerator struct layout mismatch")
	ErrResourcesLoaded          = errors.New("renderer: scene resources already loaded")
)
