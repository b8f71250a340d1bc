// Package jobs implements background tasks that run independently of HTTP
// request handling.
//
// Jobs follow a common shape: a constructor taking an interval, Start to
// launch the ticker goroutine, and Stop to shut it down and wait. Errors are
// logged and the loop keeps running.
package jobs
