// Package mongodb wraps the official MongoDB driver for gpucatalog: one
// long-lived client per process, a configured database handle and error
// translation to package sentinels.
package mongodb
