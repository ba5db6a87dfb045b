// Package scheduler repeats the check cycle for `stockwatch watch`.
//
// Schedules are either cron expressions (robfig/cron, optional seconds
// field) or fixed intervals. Runs never overlap: a tick that fires while the
// previous cycle is still running is skipped.
package scheduler
