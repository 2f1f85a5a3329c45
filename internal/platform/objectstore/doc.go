// Package objectstore provides the client for the external object storage
// service (MinIO or any S3-compatible store) that holds uploaded listing
// images. The application only hands bytes to the store and keeps the
// returned object keys; storage internals stay outside this codebase.
package objectstore
