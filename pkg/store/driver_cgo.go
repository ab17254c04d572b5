//go:build cgo

package store

import (
	"net/url"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// driverName matches the driver registered by mattn/go-sqlite3.
const driverName = "sqlite3"

// dsn builds a connection string that applies the journal mode and busy
// timeout to every pooled connection. The busy timeout is a
// per-connection setting, so it has to travel in the DSN rather than a
// one-off PRAGMA.
func dsn(path string, walMode bool, busyTimeout time.Duration) string {
	params := url.Values{}
	params.Set("_busy_timeout", strconv.FormatInt(busyTimeout.Milliseconds(), 10))
	if walMode {
		params.Set("_journal_mode", "WAL")
	}
	return "file:" + path + "?" + params.Encode()
}
