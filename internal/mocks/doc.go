// Package mocks provides hand-written mock implementations of the
// application's interfaces for use in unit tests. Each mock offers
// overridable function fields plus a map-backed default implementation
// so simple tests need no setup beyond the constructor.
package mocks
