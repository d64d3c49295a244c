package device

import (
	"context"
	"errors"
	"fmt"
)

// Kind is the operation a Query prepares for. It selects how much the
// collaborator collects: telemetry only for SmartReport, a power transition
// for the spin kinds.
type Kind int

const (
	SpinUp Kind = iota
	SpinDown
	ListTopology
	SmartReport
)

// String returns the name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case SpinUp:
		return "Spinup"
	case SpinDown:
		return "Spindown"
	case ListTopology:
		return "List"
	case SmartReport:
		return "SMART"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ErrUnsupported is returned by a Querier that cannot perform a kind of
// operation on this platform at all.
var ErrUnsupported = errors.New("unsupported on this platform")

// Querier resolves configured members into device records. It is the only
// blocking collaborator of the engine.
type Querier interface {
	// Query resolves members for kind. Every member that can be resolved
	// yields one logical record; members sharing a device share one
	// physical record. On ErrUnsupported the returned list is empty.
	Query(ctx context.Context, members []Member, kind Kind) (*List, error)
}

// QuerierFunc adapts a function to the Querier interface.
type QuerierFunc func(ctx context.Context, members []Member, kind Kind) (*List, error)

// Query calls f.
func (f QuerierFunc) Query(ctx context.Context, members []Member, kind Kind) (*List, error) {
	return f(ctx, members, kind)
}

// Options configure a platform Querier.
type Options struct {
	// Smartctl is the smartctl binary; empty means "smartctl" on PATH.
	Smartctl string
}

// NewPlatformQuerierFunc builds the platform Querier. It is set by a
// platform package's init(); import device/sysfs to register it.
var NewPlatformQuerierFunc func(opts Options) Querier

// NewPlatformQuerier returns the registered platform Querier, or one that
// reports every kind as unsupported when none is registered.
func NewPlatformQuerier(opts Options) Querier {
	if NewPlatformQuerierFunc == nil {
		return Unsupported
	}
	return NewPlatformQuerierFunc(opts)
}

// Unsupported is a Querier that supports nothing.
var Unsupported Querier = QuerierFunc(func(_ context.Context, _ []Member, kind Kind) (*List, error) {
	return &List{}, fmt.Errorf("%s: %w", kind, ErrUnsupported)
})
