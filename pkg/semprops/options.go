package semprops

import "log/slog"

// DefaultCaller prefixes error messages when no caller name is configured.
const DefaultCaller = "semprops"

type settings struct {
	caller string
	logger *slog.Logger
}

// Option configures a Builder, Converter, or Buffer.
type Option func(*settings)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCaller sets the name used to prefix error messages. It should be the
// operation name the end user invoked.
func WithCaller(name string) Option {
	return func(s *settings) {
		s.caller = name
	}
}

func newSettings(opts []Option) settings {
	s := settings{caller: DefaultCaller, logger: slog.Default()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
