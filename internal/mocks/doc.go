// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized mock implementations can be reused across test packages.
// Each mock exposes function fields that override the default behavior
// per test, plus simple data fields backing the defaults.
package mocks
