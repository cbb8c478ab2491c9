package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MembershipRepository struct {
	mock.Mock
}

func (m *MembershipRepository) Join(ctx context.Context, communityID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, communityID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MembershipRepository) Leave(ctx context.Context, communityID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, communityID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MembershipRepository) IsMember(ctx context.Context, communityID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, communityID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MembershipRepository) MemberIDs(ctx context.Context, communityID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MembershipRepository) OrganizerIDs(ctx context.Context, communityID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, communityID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}
