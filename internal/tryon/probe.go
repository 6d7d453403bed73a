package tryon

import (
	"context"
	"errors"
	"io"
	"sync"
)

// Sentinel errors Platform.OpenCameraProbe implementations return so the
// prober can distinguish denial reasons.
var (
	ErrCameraPermissionDenied = errors.New("camera permission denied")
	ErrNoCameraFound          = errors.New("no camera found")
	ErrCameraUnsupported      = errors.New("camera constraints unsupported")
)

// Platform is the boundary to the hosting environment's capability surface.
type Platform interface {
	// SecureContext reports whether the origin is HTTPS or a recognized
	// local loopback host.
	SecureContext() bool

	// HasCameraSupport reports whether a camera-access API is exposed.
	HasCameraSupport() bool

	// HasGraphicsSupport reports whether an accelerated 3D rendering
	// context can be created.
	HasGraphicsSupport() bool

	// OpenCameraProbe requests a short-lived video stream to verify camera
	// permission. The returned closer releases the stream.
	OpenCameraProbe(ctx context.Context) (io.Closer, error)
}

// Prober runs the one-shot compatibility check sequence. The verdict is
// computed once per lifetime; later calls return the cached result.
type Prober struct {
	platform Platform
	once     sync.Once
	verdict  error
}

func NewProber(platform Platform) *Prober {
	return &Prober{platform: platform}
}

// Probe checks secure context, camera API presence, graphics support, and
// camera permission in order, short-circuiting on the first failure. On
// success no resource is held afterwards.
func (p *Prober) Probe(ctx context.Context) error {
	p.once.Do(func() {
		p.verdict = p.run(ctx)
	})
	return p.verdict
}

func (p *Prober) run(ctx context.Context) error {
	if !p.platform.SecureContext() {
		return &IncompatibilityError{
			Reason:  InsecureContext,
			Message: "This experience requires a secure (HTTPS) connection.",
		}
	}
	if !p.platform.HasCameraSupport() {
		return &IncompatibilityError{
			Reason:  UnsupportedBrowser,
			Message: "Your browser does not support camera access.",
		}
	}
	if !p.platform.HasGraphicsSupport() {
		return &IncompatibilityError{
			Reason:  NoGraphicsSupport,
			Message: "Accelerated 3D graphics are not available on this device.",
		}
	}

	stream, err := p.platform.OpenCameraProbe(ctx)
	if err != nil {
		return classifyCameraError(err)
	}
	// The probe holds no resources on success; release immediately.
	if err := stream.Close(); err != nil {
		return &IncompatibilityError{
			Reason:  CameraUnavailable,
			Message: "The camera could not be released after probing.",
		}
	}
	return nil
}

func classifyCameraError(err error) *IncompatibilityError {
	switch {
	case errors.Is(err, ErrCameraPermissionDenied):
		return &IncompatibilityError{
			Reason:  PermissionDenied,
			Message: "Camera permission was denied. Allow camera access and reload.",
		}
	case errors.Is(err, ErrNoCameraFound):
		return &IncompatibilityError{
			Reason:  NoCameraFound,
			Message: "No camera was found on this device.",
		}
	case errors.Is(err, ErrCameraUnsupported):
		return &IncompatibilityError{
			Reason:  CameraUnsupported,
			Message: "The camera does not support the required video mode.",
		}
	default:
		return &IncompatibilityError{
			Reason:  CameraUnavailable,
			Message: "The camera could not be accessed.",
		}
	}
}
