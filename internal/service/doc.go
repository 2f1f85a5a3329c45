// Package service provides application-level services that sit between the
// HTTP handlers and the stores. Services own validation, ownership checks
// and orchestration of the object store for uploaded images.
package service
