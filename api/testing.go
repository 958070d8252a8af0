// Package api
// Author: momentics
//
// Mock/testing utilities for core contracts.

package api

// MockExecutor is a test-friendly Executor. With SubmitFunc unset it runs
// tasks inline on the caller's goroutine.
type MockExecutor struct {
	SubmitFunc  func(func()) error
	WorkersFunc func() int
	PendingFunc func() int
}

func (m *MockExecutor) Submit(task func()) error {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(task)
	}
	task()
	return nil
}

func (m *MockExecutor) NumWorkers() int {
	if m.WorkersFunc != nil {
		return m.WorkersFunc()
	}
	return 1
}

func (m *MockExecutor) Pending() int {
	if m.PendingFunc != nil {
		return m.PendingFunc()
	}
	return 0
}
