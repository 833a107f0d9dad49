// Package storage mirrors committed string catalogs to S3-compatible object
// storage.
//
// Every successful commit of a catalog can be uploaded as the catalog's
// "latest" object and, optionally, as an immutable history object named by a
// time-ordered UUIDv7, so a bucket keeps an audit trail of edits made through
// the API or the CLI.
//
//	mirror, err := storage.New(storage.Config{
//		Bucket:      "translations",
//		AccessKey:   os.Getenv("MIRROR_ACCESS_KEY"),
//		SecretKey:   os.Getenv("MIRROR_SECRET_KEY"),
//		Endpoint:    "http://localhost:9000", // MinIO
//		PathStyle:   true,
//		KeepHistory: true,
//	})
//	if err != nil {
//		return err
//	}
//	st, err := store.Open(path, store.WithCommitHook(mirror.Commit))
//
// Object keys look like
//
//	{prefix}/{catalog}/latest.xcstrings
//	{prefix}/{catalog}/history/{uuidv7}.xcstrings
//
// where {catalog} is derived from the file name and its directory plus a
// short hash of the absolute path, so two Localizable.xcstrings files in
// different targets never collide.
package storage
