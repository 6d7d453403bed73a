package tryon

import (
	"errors"
	"fmt"
)

// IncompatibilityReason classifies why the device cannot run the AR session.
type IncompatibilityReason int

const (
	InsecureContext IncompatibilityReason = iota
	UnsupportedBrowser
	NoGraphicsSupport
	PermissionDenied
	NoCameraFound
	CameraUnsupported
	CameraUnavailable
)

func (r IncompatibilityReason) String() string {
	switch r {
	case InsecureContext:
		return "insecure context"
	case UnsupportedBrowser:
		return "unsupported browser"
	case NoGraphicsSupport:
		return "no graphics support"
	case PermissionDenied:
		return "permission denied"
	case NoCameraFound:
		return "no camera found"
	case CameraUnsupported:
		return "camera unsupported"
	case CameraUnavailable:
		return "camera unavailable"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// IncompatibilityError is the blocking verdict of a failed compatibility
// probe. Message is user-facing.
type IncompatibilityError struct {
	Reason  IncompatibilityReason
	Message string
}

func (e *IncompatibilityError) Error() string {
	return fmt.Sprintf("incompatible device (%s): %s", e.Reason, e.Message)
}

// AssetErrorKind classifies a failed asset materialization.
type AssetErrorKind int

const (
	AssetTimeout AssetErrorKind = iota
	AssetLoadFailed
)

func (k AssetErrorKind) String() string {
	if k == AssetTimeout {
		return "timeout"
	}
	return "load failed"
}

// AssetError reports a failed asset materialization. Surfaced per toggle,
// never fatal to the session.
type AssetError struct {
	AssetID string
	Kind    AssetErrorKind
	Detail  string
}

func (e *AssetError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("asset %s: %s: %s", e.AssetID, e.Kind, e.Detail)
	}
	return fmt.Sprintf("asset %s: %s", e.AssetID, e.Kind)
}

// ErrARInitFailed indicates the AR engine never reported ready within the
// configured bound. Startup-fatal.
var ErrARInitFailed = errors.New("AR engine failed to initialize")

// SceneError wraps an entity create/remove failure. Logged and isolated per
// operation, never fatal to the session.
type SceneError struct {
	EntityID string
	Op       string // "create" or "remove"
	Err      error
}

func (e *SceneError) Error() string {
	return fmt.Sprintf("scene %s %s: %v", e.Op, e.EntityID, e.Err)
}

func (e *SceneError) Unwrap() error {
	return e.Err
}
