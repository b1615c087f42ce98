// Package battlemetrics is a small client for the BattleMetrics public
// server API. It fetches one server at a time and reports failures as
// structured errors so callers can tell an unknown server ID apart from a
// network problem, an unexpected HTTP status, or a response it can't read.
package battlemetrics
