// Package monitor polls a single game server on a jittered timer.
//
// Each ServerMonitor owns two cancellable timers: the refresh timer, which
// starts the next cycle after the monitor's interval, and the countdown timer,
// which ticks once per second so the display can show the seconds remaining.
// Monitors share nothing with each other; everything they need from the
// outside world arrives through an Env.
//
// # Refresh cycle
//
//  1. RefreshCycle stops the pending refresh timer, resets the countdown to
//     the interval and schedules the next cycle.
//  2. A fetch starts without blocking the caller. It is tagged with the cycle
//     generation so a completion that arrives after a newer cycle (or after
//     Close) is discarded.
//  3. The completion updates status, history and trend, then reports a
//     Snapshot through Env.OnChange.
//
// The countdown tick is armed one second after the cycle starts, so the
// countdown reaches zero at the instant the next refresh fires regardless of
// how long the fetch took.
//
// # Failures
//
// Any fetch failure moves the monitor to StatusDown. There is no retry or
// backoff; the next scheduled cycle is the retry. While down, ManualRefresh
// is refused unless Env.RefreshWhenDown is set.
package monitor
