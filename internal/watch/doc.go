// Package watch observes a single directory for newly created print files.
// It filters creation events by extension, skips directories, waits a short
// settle delay so the producing application can finish writing, and then
// hands each file to a Handler on the watch goroutine.
package watch
