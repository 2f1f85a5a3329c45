// Package postgres contains the PostgreSQL implementations of the store
// interfaces, using database/sql with the pgx stdlib driver.
package postgres
