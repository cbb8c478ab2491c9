package mocks

import (
	"context"

	"berbagi/internal/pkg/worker"
)

// InlineSubmitter runs every task synchronously on the caller's goroutine.
type InlineSubmitter struct {
	Submitted int
}

func (s *InlineSubmitter) SubmitDetached(task worker.Task) error {
	s.Submitted++
	task(context.Background())
	return nil
}
