// Package auth provides authentication primitives: signed bearer tokens
// and password verification. Registration and login flows are composed from
// these in the API layer.
package auth
