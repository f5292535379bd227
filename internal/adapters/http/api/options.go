package api

import "github.com/okian/teammate/pkg/logger"

// Option configures a Server.
type Option func(*Server)

// WithMaxImportBytes caps the body size of roster uploads.
func WithMaxImportBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxImportBytes = n
		}
	}
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}
