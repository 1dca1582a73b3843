package service

import "time"

// ServiceOption customizes the services built by this package.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	now func() time.Time
}

// WithClock replaces the wall clock used for timestamps and the start of the
// current day.
func WithClock(now func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func applyServiceOptions(opts []ServiceOption) serviceOptions {
	o := serviceOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
