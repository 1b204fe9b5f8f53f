package display

import "errors"

var (
	ErrSurfaceAlreadyAcquired = errors.New("display: surface already owned by the accelerator")
	ErrSurfaceNotAcquired     = errors.New("display: surface write without a preceding acquire")
	ErrPresentWithoutRelease  = errors.New("display: present without a preceding release")
)
