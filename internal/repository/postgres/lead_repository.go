package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
)

type leadRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewLeadRepository создает новый экземпляр LeadRepository
func NewLeadRepository(db *DB) repository.LeadRepository {
	return &leadRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Create сохраняет заявку и заполняет id и created_at
func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) (int64, error) {
	query := `
		INSERT INTO leads (nombre, email, telefono, mensaje, tour_id, idioma)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		lead.Name, lead.Email, lead.Phone, lead.Message, lead.TourID, lead.Locale,
	).Scan(&lead.ID, &lead.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create lead", zap.String("email", lead.Email), zap.Error(err))
		return 0, mapError(err)
	}

	return lead.ID, nil
}

func (r *leadRepository) List(ctx context.Context, limit, offset int) ([]domain.Lead, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM leads`); err != nil {
		r.logger.Error("Failed to count leads", zap.Error(err))
		return nil, 0, mapError(err)
	}

	if offset < 0 {
		offset = 0
	}

	var leads []domain.Lead
	err := r.db.SelectContext(ctx, &leads, `
		SELECT id, nombre, email, telefono, mensaje, tour_id, idioma, created_at
		FROM leads
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, normalizeLimit(limit), offset)
	if err != nil {
		r.logger.Error("Failed to list leads", zap.Error(err))
		return nil, 0, mapError(err)
	}

	return leads, total, nil
}
