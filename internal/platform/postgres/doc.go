// Package postgres provides the PostgreSQL persistence layer: the pooled
// client handle lifecycle (ClientProvider/ClientRegistry), implementations
// of the store interfaces, and mapping of PostgreSQL errors to the shared
// store errors.
package postgres
