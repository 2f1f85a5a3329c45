// Package api provides the HTTP handlers for the marketplace API: user
// registration/login/profile and listing CRUD with search, filtering,
// sorting and pagination.
package api
