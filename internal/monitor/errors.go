package monitor

import "errors"

// ErrRefreshDisabled is returned by ManualRefresh while the server is down
// and manual refresh of down servers is not allowed.
var ErrRefreshDisabled = errors.New("refresh is disabled while the server is down")

// ErrClosed is returned when operating on a closed monitor.
var ErrClosed = errors.New("monitor is closed")
