// Package domain defines the core business entities of the marketplace:
// users and the listings they own. Entities validate themselves; persistence
// and transport concerns live elsewhere.
package domain
