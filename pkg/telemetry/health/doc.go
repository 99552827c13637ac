// Package health exposes liveness and readiness probes for long-running
// yaml-io processes such as "yamlio watch".
//
// Readiness aggregates registered checks; the watch command registers one
// that fails while the most recent reload of the watched document failed:
//
//	checker := health.New(time.Second)
//	checker.RegisterCheck("reload", watcher.LastError)
//	health.Register(mux, checker)
package health
