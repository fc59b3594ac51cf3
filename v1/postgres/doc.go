// Package postgres provides a PostgreSQL client on top of gorm and pgx with
// connection monitoring, lock-free reconnection and error translation.
//
// *Postgres satisfies database.Client and is selected by database.Config
// with driver "postgres".
package postgres
