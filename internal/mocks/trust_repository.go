package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"berbagi/internal/domain"
)

type TrustRepository struct {
	mock.Mock
}

func (m *TrustRepository) Swap(ctx context.Context, score *domain.TrustScore) (float64, error) {
	args := m.Called(ctx, score)
	return args.Get(0).(float64), args.Error(1)
}
