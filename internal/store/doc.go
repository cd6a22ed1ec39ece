// Package store defines the persistence interfaces and shared persistence
// errors used by the application. Concrete implementations live in
// internal/platform/postgres; services and handlers depend only on the
// interfaces defined here.
package store
