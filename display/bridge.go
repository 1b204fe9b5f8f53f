package display

import "fmt"

// The current owner of the shared surface.
type Owner uint8

const (
	OwnerDisplay Owner = iota
	OwnerAccelerator
)

// Implements Stringer.
func (o Owner) String() string {
	switch o {
	case OwnerDisplay:
		return "display"
	case OwnerAccelerator:
		return "accelerator"
	default:
		panic(fmt.Sprintf("unsupported surface owner: %d", o))
	}
}

// Transfer is implemented by compute accelerators that write into the shared
// surface.
type Transfer interface {
	// Take ownership of the surface.
	AcquireSurface() error

	// Return ownership of the surface copying its contents into dst.
	ReleaseSurface(dst []byte) error
}

// Presenter is implemented by the display subsystem.
type Presenter interface {
	// Get the host side copy of the surface.
	Pixels() []byte

	// Display the surface contents.
	Present() error
}

// Bridge tracks ownership of the surface shared between the accelerator and
// the display subsystem. The display owns the surface initially. Every
// contract violation is reported as an error and leaves the state unchanged.
type Bridge struct {
	transfer  Transfer
	presenter Presenter

	owner       Owner
	presentable bool
}

// Create a new bridge between an accelerator and a display.
func NewBridge(transfer Transfer, presenter Presenter) *Bridge {
	return &Bridge{
		transfer:  transfer,
		presenter: presenter,
		owner:     OwnerDisplay,
	}
}

// Get the current surface owner.
func (b *Bridge) Owner() Owner {
	return b.owner
}

// Hand the surface to the accelerator. Any completed but not yet presented
// frame is discarded.
func (b *Bridge) Acquire() error {
	if b.owner != OwnerDisplay {
		return ErrSurfaceAlreadyAcquired
	}
	if err := b.transfer.AcquireSurface(); err != nil {
		return err
	}

	b.owner = OwnerAccelerator
	b.presentable = false
	return nil
}

// Ensure that the accelerator may write to the surface.
func (b *Bridge) CheckWrite() error {
	if b.owner != OwnerAccelerator {
		return ErrSurfaceNotAcquired
	}
	return nil
}

// Hand the surface back to the display once all accelerator writes have
// completed.
func (b *Bridge) Release() error {
	if b.owner != OwnerAccelerator {
		return ErrSurfaceNotAcquired
	}
	if err := b.transfer.ReleaseSurface(b.presenter.Pixels()); err != nil {
		return err
	}

	b.owner = OwnerDisplay
	b.presentable = true
	return nil
}

// Present the most recently released surface.
func (b *Bridge) Present() error {
	if b.owner != OwnerDisplay || !b.presentable {
		return ErrPresentWithoutRelease
	}
	if err := b.presenter.Present(); err != nil {
		return err
	}

	b.presentable = false
	return nil
}
