// Package mocks provides test doubles for the geocode package.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"
)

// MockResolver is a mock type for the Resolver interface.
type MockResolver struct {
	mock.Mock
}

// Resolve provides a mock function with given fields: ctx, lat, lng
func (_m *MockResolver) Resolve(ctx context.Context, lat float64, lng float64) string {
	ret := _m.Called(ctx, lat, lng)

	if len(ret) == 0 {
		panic("no return value specified for Resolve")
	}

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, float64, float64) string); ok {
		r0 = rf(ctx, lat, lng)
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// NewMockResolver creates a new instance of MockResolver. It also registers a
// testing interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewMockResolver(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockResolver {
	mock := &MockResolver{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
