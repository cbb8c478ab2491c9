package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"berbagi/internal/domain"
)

type ShoutoutRepository struct {
	mock.Mock
}

func (m *ShoutoutRepository) Create(ctx context.Context, shoutout *domain.Shoutout) error {
	args := m.Called(ctx, shoutout)
	return args.Error(0)
}
