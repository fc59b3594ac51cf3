// Package mariadb provides a MariaDB/MySQL client on top of gorm with
// connection monitoring, automatic reconnection and error translation.
//
// The DSN is built with go-sql-driver/mysql and always enables parseTime and
// clientFoundRows, so UPDATE row counts mean "matched".
//
// *MariaDB satisfies database.Client; applications normally obtain it through
// database.FXModule rather than directly.
package mariadb
