package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/pkg/errors"
)

type tourReadRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewTourReadRepository создает репозиторий выборок туров
func NewTourReadRepository(db *DB) repository.TourReadRepository {
	return &tourReadRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// List возвращает страницу туров и общее количество по фильтру
func (r *tourReadRepository) List(ctx context.Context, filter domain.TourFilter) ([]domain.Tour, int, error) {
	var (
		conditions []string
		args       []interface{}
	)

	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		conditions = append(conditions, fmt.Sprintf("(t.titulo ILIKE $%d OR t.descripcion ILIKE $%d)", len(args), len(args)))
	}

	if filter.DestinationID > 0 {
		args = append(args, filter.DestinationID)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM tour_destinos td WHERE td.tour_id = t.id AND td.destino_id = $%d)", len(args)))
	}

	if filter.OnlyListed {
		args = append(args, filter.Today)
		conditions = append(conditions, fmt.Sprintf(
			"(t.fecha_publicacion IS NULL OR t.fecha_publicacion <= $%d) AND (t.fecha_caducidad IS NULL OR t.fecha_caducidad >= $%d)",
			len(args), len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM tours t"+where, args...); err != nil {
		r.logger.Error("Failed to count tours", zap.Error(err))
		return nil, 0, mapError(err)
	}

	limit := normalizeLimit(filter.Limit)
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
		SELECT %s FROM tours t%s
		ORDER BY t.fecha_publicacion DESC NULLS LAST, t.id DESC
		LIMIT $%d OFFSET $%d
	`, prefixed("t", tourColumns), where, len(args)+1, len(args)+2)

	var tours []domain.Tour
	if err := r.db.SelectContext(ctx, &tours, query, append(args, limit, offset)...); err != nil {
		r.logger.Error("Failed to list tours", zap.Error(err))
		return nil, 0, mapError(err)
	}

	return tours, total, nil
}

func (r *tourReadRepository) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *tourReadRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	return r.getOne(ctx, "slug = $1", slug)
}

func (r *tourReadRepository) getOne(ctx context.Context, cond string, arg interface{}) (*domain.Tour, error) {
	var tour domain.Tour
	err := r.db.GetContext(ctx, &tour, "SELECT "+tourColumns+" FROM tours WHERE "+cond, arg)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrTourNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get tour", zap.Any("key", arg), zap.Error(err))
		return nil, mapError(err)
	}

	return &tour, nil
}

// DestinationsForTours возвращает направления туров с названиями, по порядку
func (r *tourReadRepository) DestinationsForTours(ctx context.Context, tourIDs []int64) ([]domain.TourDestinationView, error) {
	query := `
		SELECT td.tour_id, td.destino_id, d.nombre, d.pais, td.orden
		FROM tour_destinos td
		JOIN destinos d ON d.id = td.destino_id
		WHERE td.tour_id = ANY($1)
		ORDER BY td.tour_id, td.orden
	`

	var rows []domain.TourDestinationView
	if err := r.selectForTours(ctx, &rows, query, tourIDs); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tourReadRepository) DeparturesForTours(ctx context.Context, tourIDs []int64) ([]domain.Departure, error) {
	query := `
		SELECT id, tour_id, fecha_salida, duracion_dias, cupos_disponibles
		FROM salidas
		WHERE tour_id = ANY($1)
		ORDER BY tour_id, fecha_salida NULLS LAST, id
	`

	var rows []domain.Departure
	if err := r.selectForTours(ctx, &rows, query, tourIDs); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tourReadRepository) PricesForTours(ctx context.Context, tourIDs []int64) ([]domain.Price, error) {
	query := `
		SELECT id, tour_id, ciudad_salida, tipo_habitacion, forma_pago, precio
		FROM precios
		WHERE tour_id = ANY($1)
		ORDER BY tour_id, precio, id
	`

	var rows []domain.Price
	if err := r.selectForTours(ctx, &rows, query, tourIDs); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tourReadRepository) ComponentsForTours(ctx context.Context, tourIDs []int64) ([]domain.IncludedComponents, error) {
	query := `
		SELECT tour_id, incluye_vuelo, incluye_hotel, incluye_transporte, incluye_comida,
			incluye_actividades, incluye_maleta_10kg, incluye_maleta_23kg, incluye_articulo_personal
		FROM componentes_incluidos
		WHERE tour_id = ANY($1)
	`

	var rows []domain.IncludedComponents
	if err := r.selectForTours(ctx, &rows, query, tourIDs); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tourReadRepository) GiftsForTours(ctx context.Context, tourIDs []int64) ([]domain.TourGiftView, error) {
	query := `
		SELECT tr.tour_id, tr.regalo_id, g.nombre
		FROM tour_regalos tr
		JOIN regalos g ON g.id = tr.regalo_id
		WHERE tr.tour_id = ANY($1)
		ORDER BY tr.tour_id, g.nombre
	`

	var rows []domain.TourGiftView
	if err := r.selectForTours(ctx, &rows, query, tourIDs); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tourReadRepository) PhotosForTours(ctx context.Context, tourIDs []int64) ([]domain.TourPhoto, error) {
	query := `
		SELECT id, tour_id, url, orden
		FROM tour_fotos
		WHERE tour_id = ANY($1)
		ORDER BY tour_id, orden
	`

	var rows []domain.TourPhoto
	if err := r.selectForTours(ctx, &rows, query, tourIDs); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tourReadRepository) selectForTours(ctx context.Context, dest interface{}, query string, tourIDs []int64) error {
	if len(tourIDs) == 0 {
		return nil
	}

	if err := r.db.SelectContext(ctx, dest, query, pq.Array(tourIDs)); err != nil {
		r.logger.Error("Failed to load tour children", zap.Int64s("tour_ids", tourIDs), zap.Error(err))
		return mapError(err)
	}
	return nil
}

// prefixed добавляет алиас таблицы к списку колонок
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
