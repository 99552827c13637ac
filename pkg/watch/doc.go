// Package watch re-resolves a root document whenever one of the documents in
// its import graph changes on disk.
//
// The watcher subscribes to the directories holding every document of the
// last resolved graph rather than to the files themselves, so editors that
// replace files through rename keep triggering reloads. Bursts of events are
// debounced into a single load. After every load the watched set is widened
// to cover newly imported documents.
//
// Usage:
//
//	w, err := watch.NewWatcher(loader, watch.FromConfig(&cfg.Watch, "app.yaml"), logger)
//	if err != nil {
//	    return err
//	}
//	err = w.Watch(ctx, func(res *yamlio.Result, err error) {
//	    // publish res or report err
//	})
package watch
