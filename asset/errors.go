package asset

import "errors"

var (
	ErrUnsupportedScheme = errors.New("resource: unsupported scheme")
	ErrUnexpectedEOF     = errors.New("asset: unexpected end of file")
	ErrSyntax            = errors.New("asset: syntax error")
	ErrUnsupportedFormat = errors.New("asset: unsupported data format")
	ErrIndexOutOfRange   = errors.New("asset: index out of range")
	ErrUnknownObject     = errors.New("asset: unknown object")
	ErrMissingMesh       = errors.New("asset: mesh object without a mesh chain")
)
