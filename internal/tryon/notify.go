package tryon

import "log"

// Phase is the coarse lifecycle phase shown in the status bar.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseActive  Phase = "active"
	PhaseError   Phase = "error"
)

// ToastLevel grades a transient notification.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

func (l ToastLevel) String() string {
	switch l {
	case ToastSuccess:
		return "success"
	case ToastWarning:
		return "warning"
	case ToastError:
		return "error"
	default:
		return "info"
	}
}

// Notifier receives user-facing state text and toast messages. Pure output;
// implementations hold no state beyond the currently displayed message.
type Notifier interface {
	Phase(p Phase, message string)
	Toastf(level ToastLevel, format string, args ...any)
}

// LogNotifier writes notifications to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Phase(p Phase, message string) {
	log.Printf("[%s] %s", p, message)
}

func (LogNotifier) Toastf(level ToastLevel, format string, args ...any) {
	log.Printf("[toast/%s] "+format, append([]any{level}, args...)...)
}
