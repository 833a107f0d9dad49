// Package store keeps string catalogs in memory and persists them safely.
//
// A Store owns one catalog file. Reads run concurrently against an immutable
// snapshot; writes are serialised, applied to a copy of the snapshot, written
// to a temporary file in the same directory, synced and renamed over the
// original, and only then published. A failed write leaves both the file and
// the in-memory catalog as they were.
//
//	st, err := store.Open("Localizable.xcstrings", store.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	unit, err := st.UpsertTranslation(ctx, "greeting", "uk", catalog.Patch{Text: &text})
//
// A Registry hands out one Store per catalog path. In pinned mode it is
// built with a default path and serves that catalog when callers pass no
// path; in discovery mode it scans a search root for catalog files and
// callers name the catalog they want. Concurrent first requests for the same
// path share a single load.
//
//	reg, err := store.NewRegistry(store.WithSearchRoot("/src/app"))
//	paths, err := reg.Paths(ctx)
//	st, err := reg.Store(ctx, paths[0])
//
// The Store never watches its file. Changes made by other programs become
// visible after Reload, and a write made without a Reload overwrites them.
package store
