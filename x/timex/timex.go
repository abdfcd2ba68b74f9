// Package timex holds the odd time helper shared by the diagnostics
// surfaces.
package timex

import "time"

// NowMs returns Unix milliseconds as int64, the timestamp format the
// websocket event stream hands to browser clients.
func NowMs() int64 { return time.Now().UnixMilli() }
