// Package sl holds small helpers for building slog attributes.
package sl

import "log/slog"

// Err returns an "error" attribute carrying err's message. A nil error is
// logged as an empty string.
//
//	log.Error("failed to load profile", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Op returns the "op" attribute used to tag log lines with the calling function.
func Op(op string) slog.Attr {
	return slog.String("op", op)
}
