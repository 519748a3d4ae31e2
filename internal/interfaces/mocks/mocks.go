// Package mocks holds testify mocks for the interfaces package.
package mocks

import "github.com/stretchr/testify/mock"

// testingT is what the constructors need to register expectation checks.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}
