package leveldata

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrMalformedDocument        = errors.New("malformed document")
	ErrUnsupportedFeature       = errors.New("unsupported feature")
	ErrUnresolvedReference      = errors.New("unresolved reference")
	ErrOverlappingTilesetRanges = errors.New("overlapping tileset ranges")
	ErrAssetLoadFailure         = errors.New("asset load failure")
)

// Error carries one of the kinds above plus where it happened.
type Error struct {
	Kind error
	Op   string // "parse map", "resolve gid", ...
	Path string // document path or field path, may be empty
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func malformed(op, path, format string, args ...any) error {
	return &Error{Kind: ErrMalformedDocument, Op: op, Path: path, Err: fmt.Errorf(format, args...)}
}

func unsupported(op, path, format string, args ...any) error {
	return &Error{Kind: ErrUnsupportedFeature, Op: op, Path: path, Err: fmt.Errorf(format, args...)}
}

func unresolved(op, path, format string, args ...any) error {
	return &Error{Kind: ErrUnresolvedReference, Op: op, Path: path, Err: fmt.Errorf(format, args...)}
}

// AssetLoadError wraps a failed asset read or decode.
func AssetLoadError(path string, err error) error {
	return &Error{Kind: ErrAssetLoadFailure, Op: "load asset", Path: path, Err: err}
}
