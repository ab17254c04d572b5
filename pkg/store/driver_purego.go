//go:build !cgo

package store

import (
	"net/url"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// driverName matches the driver registered by modernc.org/sqlite, the
// pure Go translation that keeps CGO_ENABLED=0 builds working.
const driverName = "sqlite"

// dsn builds a connection string that applies the journal mode and busy
// timeout to every pooled connection. modernc spells connection pragmas
// as _pragma=name(value) query parameters.
func dsn(path string, walMode bool, busyTimeout time.Duration) string {
	params := url.Values{}
	params.Add("_pragma", "busy_timeout("+strconv.FormatInt(busyTimeout.Milliseconds(), 10)+")")
	if walMode {
		params.Add("_pragma", "journal_mode(WAL)")
	}
	return "file:" + path + "?" + params.Encode()
}
