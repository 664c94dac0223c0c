// Package imagestore uploads accepted character images to a storage backend
// and returns the public URL used as the session's image reference. Two
// backends ship: S3 (and S3-compatible services) for production and a local
// filesystem store for development. Transcoding happens upstream; this
// package only stores bytes it is handed.
package imagestore
