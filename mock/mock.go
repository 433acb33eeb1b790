// Package mock provides function-field mock implementations of the
// webster interfaces for use in tests.
package mock
