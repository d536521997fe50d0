package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tour-microservice/internal/domain"
)

func TestLeadRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO leads")).
		WithArgs("Ana", "ana@example.com", nil, "Hola", nil, "en").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(31, created))

	lead := &domain.Lead{Name: "Ana", Email: "ana@example.com", Message: "Hola", Locale: domain.LocaleEN}
	id, err := repo.Create(context.Background(), lead)

	require.NoError(t, err)
	assert.Equal(t, int64(31), id)
	assert.Equal(t, int64(31), lead.ID)
	assert.Equal(t, created, lead.CreatedAt)
}

func TestLeadRepository_ListClampsLimit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM leads")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM leads")).
		WithArgs(MaxQueryLimit, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "email", "telefono", "mensaje", "tour_id", "idioma", "created_at"}).
			AddRow(1, "Ana", "ana@example.com", nil, "Hola", nil, "es", time.Now()))

	leads, total, err := repo.List(context.Background(), 5000, -3)

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, leads, 1)
	assert.Equal(t, domain.LocaleES, leads[0].Locale)
}
