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
	"github.com/tour-microservice/internal/usecase/dto"
)

func TestLeadUseCase_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("stores lead and publishes event with tour title", func(t *testing.T) {
		leads := &MockLeadRepository{}
		tours := &MockTourReadRepository{}
		stream := &MockStreamRepository{}
		uc := usecase.NewLeadUseCase(leads, tours, stream, zap.NewNop())

		tours.On("GetByID", mock.Anything, int64(5)).Return(&domain.Tour{ID: 5, Title: "Cancún"}, nil)
		leads.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.Lead) bool {
			return l.Locale == domain.LocaleEN && l.Email == "ana@example.com"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Lead).ID = 77
		}).Return(int64(77), nil)
		stream.On("PublishToStream", mock.Anything, domain.StreamLeadCreated, mock.MatchedBy(func(e domain.LeadCreatedEvent) bool {
			return e.LeadID == 77 && e.TourTitle != nil && *e.TourTitle == "Cancún" && e.Locale == domain.LocaleEN
		})).Return(nil)

		lead, err := uc.Submit(ctx, dto.ContactRequest{
			Name: "Ana", Email: "ana@example.com", Message: "Info please", TourID: ptrInt64(5),
		}, domain.LocaleEN)
		require.NoError(t, err)
		assert.Equal(t, int64(77), lead.ID)

		leads.AssertExpectations(t)
		stream.AssertExpectations(t)
	})

	t.Run("publish failure keeps the lead", func(t *testing.T) {
		leads := &MockLeadRepository{}
		stream := &MockStreamRepository{}
		uc := usecase.NewLeadUseCase(leads, &MockTourReadRepository{}, stream, zap.NewNop())

		leads.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil)
		stream.On("PublishToStream", mock.Anything, mock.Anything, mock.Anything).Return(stderrors.New("redis down"))

		lead, err := uc.Submit(ctx, dto.ContactRequest{Name: "Luis", Email: "luis@example.com", Message: "Hola"}, domain.LocaleES)
		require.NoError(t, err)
		assert.NotNil(t, lead)
	})

	t.Run("unknown tour is a validation error", func(t *testing.T) {
		leads := &MockLeadRepository{}
		tours := &MockTourReadRepository{}
		uc := usecase.NewLeadUseCase(leads, tours, &MockStreamRepository{}, zap.NewNop())
		tours.On("GetByID", mock.Anything, int64(404)).Return(nil, errors.ErrTourNotFound)

		_, err := uc.Submit(ctx, dto.ContactRequest{
			Name: "Ana", Email: "ana@example.com", Message: "?", TourID: ptrInt64(404),
		}, domain.LocaleES)
		assert.True(t, stderrors.Is(err, errors.ErrValidation))
		leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing fields", func(t *testing.T) {
		uc := usecase.NewLeadUseCase(&MockLeadRepository{}, &MockTourReadRepository{}, &MockStreamRepository{}, zap.NewNop())

		_, err := uc.Submit(ctx, dto.ContactRequest{Email: "bad"}, domain.LocaleES)
		require.Error(t, err)

		var appErr *errors.AppError
		require.True(t, stderrors.As(err, &appErr))
		fields := appErr.Details["fields"].(map[string]interface{})
		assert.Len(t, fields, 3)
	})
}

func TestLeadUseCase_List(t *testing.T) {
	leads := &MockLeadRepository{}
	uc := usecase.NewLeadUseCase(leads, &MockTourReadRepository{}, &MockStreamRepository{}, zap.NewNop())
	leads.On("List", mock.Anything, 20, 40).Return([]domain.Lead{{ID: 1}}, 41, nil)

	resp, err := uc.List(context.Background(), dto.PageRequest{Limit: 20, Offset: 40})
	require.NoError(t, err)
	assert.Equal(t, 41, resp.Total)
	assert.Equal(t, 40, resp.Offset)
}

func TestLeadUseCase_ListDefaultLimit(t *testing.T) {
	leads := &MockLeadRepository{}
	uc := usecase.NewLeadUseCase(leads, &MockTourReadRepository{}, &MockStreamRepository{}, zap.NewNop())
	leads.On("List", mock.Anything, dto.DefaultPageLimit, 0).Return([]domain.Lead{}, 0, nil)

	resp, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, dto.DefaultPageLimit, resp.Limit)
	leads.AssertExpectations(t)
}
