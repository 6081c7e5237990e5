// Package obs provides the one logging convention used across this repo: a
// standard-library *log.Logger, built once and threaded explicitly into
// anything that needs it (never a package-level global), matching how the
// teacher passes *log.Logger into database.NewDB.
package obs

import (
	"io"
	"log"
)

// New returns a *log.Logger writing to w with the given prefix, using the
// teacher's flag convention (date, time, no microseconds).
func New(w io.Writer, prefix string) *log.Logger {
	if prefix != "" {
		prefix += " "
	}
	return log.New(w, prefix, log.LstdFlags)
}
