// Package storage archives sync runs in S3-compatible object storage.
//
// It wraps the MinIO Go client behind the Client interface so archiving can be
// mocked in tests (see core/storage/mocks). Archiver lays objects out per run:
//
//	<prefix>/<run-id>/<source file>
//	<prefix>/<run-id>/report.json
//
// # Usage
//
//	client, err := storage.NewClient(cfg)
//	archiver := storage.NewArchiver(client, cfg)
//	err = archiver.EnsureBucket(ctx)
package storage
