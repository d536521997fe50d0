package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/pkg/errors"
	"github.com/tour-microservice/internal/usecase"
)

func strPtr(s string) *string { return &s }

func TestReferenceUseCase_List(t *testing.T) {
	ctx := context.Background()
	repo := &MockReferenceRepository[domain.Airline]{}
	repo.On("List", mock.Anything).Return([]domain.Airline{
		{ID: 1, Name: "Aeroméxico", IATACode: strPtr("AM")},
		{ID: 2, Name: "Volaris", IATACode: strPtr("Y4")},
		{ID: 3, Name: "Viva Aerobus"},
	}, nil)
	uc := usecase.NewReferenceUseCase[domain.Airline](repo, newPermissiveCache(), zap.NewNop(), "airline")

	t.Run("no filter returns everything", func(t *testing.T) {
		items, err := uc.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("filter is case insensitive", func(t *testing.T) {
		items, err := uc.List(ctx, "  VOLA ")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, int64(2), items[0].ID)
	})

	t.Run("filter matches secondary fields", func(t *testing.T) {
		items, err := uc.List(ctx, "am")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Aeroméxico", items[0].Name)
	})

	t.Run("no match gives empty list", func(t *testing.T) {
		items, err := uc.List(ctx, "iberia")
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestReferenceUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid entity", func(t *testing.T) {
		repo := &MockReferenceRepository[domain.Destination]{}
		dest := &domain.Destination{Name: "Cancún", Country: strPtr("México")}
		repo.On("Create", mock.Anything, dest).Return(int64(12), nil)
		uc := usecase.NewReferenceUseCase[domain.Destination](repo, newPermissiveCache(), zap.NewNop(), "destination")

		id, err := uc.Create(ctx, dest)
		require.NoError(t, err)
		assert.Equal(t, int64(12), id)
		repo.AssertExpectations(t)
	})

	t.Run("missing name is rejected before the database", func(t *testing.T) {
		repo := &MockReferenceRepository[domain.Gift]{}
		uc := usecase.NewReferenceUseCase[domain.Gift](repo, newPermissiveCache(), zap.NewNop(), "gift")

		_, err := uc.Create(ctx, &domain.Gift{})
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrValidation))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestReferenceUseCase_Update(t *testing.T) {
	ctx := context.Background()
	repo := &MockReferenceRepository[domain.TermsAndConditions]{}
	cache := &MockCacheRepository{}
	terms := &domain.TermsAndConditions{Title: "Generales", Content: "Texto"}
	repo.On("Update", mock.Anything, int64(5), terms).Return(nil)
	cache.On("DeleteByPrefix", mock.Anything, "tour").Return(nil)
	uc := usecase.NewReferenceUseCase[domain.TermsAndConditions](repo, cache, zap.NewNop(), "terms")

	require.NoError(t, uc.Update(ctx, 5, terms))
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestReferenceUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("referenced record is kept", func(t *testing.T) {
		repo := &MockReferenceRepository[domain.Destination]{}
		repo.On("IsReferenced", mock.Anything, int64(7)).Return(true, nil)
		uc := usecase.NewReferenceUseCase[domain.Destination](repo, newPermissiveCache(), zap.NewNop(), "destination")

		err := uc.Delete(ctx, 7)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrReferenceInUse))

		var appErr *errors.AppError
		require.True(t, stderrors.As(err, &appErr))
		assert.Equal(t, "destination", appErr.Details["entity"])
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unreferenced record is deleted", func(t *testing.T) {
		repo := &MockReferenceRepository[domain.Destination]{}
		cache := &MockCacheRepository{}
		repo.On("IsReferenced", mock.Anything, int64(8)).Return(false, nil)
		repo.On("Delete", mock.Anything, int64(8)).Return(nil)
		cache.On("DeleteByPrefix", mock.Anything, "tour").Return(nil)
		uc := usecase.NewReferenceUseCase[domain.Destination](repo, cache, zap.NewNop(), "destination")

		require.NoError(t, uc.Delete(ctx, 8))
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("race with a new tour is still reported as in use", func(t *testing.T) {
		repo := &MockReferenceRepository[domain.Airline]{}
		repo.On("IsReferenced", mock.Anything, int64(3)).Return(false, nil)
		repo.On("Delete", mock.Anything, int64(3)).Return(errors.ErrReferenceInUse)
		uc := usecase.NewReferenceUseCase[domain.Airline](repo, newPermissiveCache(), zap.NewNop(), "airline")

		err := uc.Delete(ctx, 3)
		assert.True(t, stderrors.Is(err, errors.ErrReferenceInUse))
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := &MockReferenceRepository[domain.Gift]{}
		repo.On("IsReferenced", mock.Anything, int64(99)).Return(false, nil)
		repo.On("Delete", mock.Anything, int64(99)).Return(errors.ErrNotFound)
		uc := usecase.NewReferenceUseCase[domain.Gift](repo, newPermissiveCache(), zap.NewNop(), "gift")

		err := uc.Delete(ctx, 99)
		assert.True(t, stderrors.Is(err, errors.ErrNotFound))
	})
}
