package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/pkg/errors"
)

const tourColumns = `id, titulo, descripcion, duracion_dias, fecha_publicacion, fecha_caducidad,
	cortesias, terminos, politica_cancelacion, slug, pdf_detalles_url,
	aerolinea_id, terminos_condiciones_id, created_at, updated_at`

type tourTxManager struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewTourTxManager создает менеджер транзакций для записи агрегата тура
func NewTourTxManager(db *DB) repository.TourTxManager {
	return &tourTxManager{
		db:     db.DB,
		logger: db.logger,
	}
}

// WithinTx выполняет fn в транзакции: commit при nil, rollback при ошибке или панике
func (m *tourTxManager) WithinTx(ctx context.Context, fn func(store repository.TourStore) error) error {
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		m.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError.Wrap(err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&tourStore{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			m.logger.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		m.logger.Error("Failed to commit transaction", zap.Error(err))
		return mapError(err)
	}

	return nil
}

type tourStore struct {
	tx *sqlx.Tx
}

func (s *tourStore) InsertTour(ctx context.Context, t *domain.Tour) (int64, error) {
	query := `
		INSERT INTO tours (
			titulo, descripcion, duracion_dias, fecha_publicacion, fecha_caducidad,
			cortesias, terminos, politica_cancelacion, slug, pdf_detalles_url,
			aerolinea_id, terminos_condiciones_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id int64
	err := s.tx.QueryRowContext(ctx, query,
		t.Title, t.Description, t.DurationDays, t.PublishedAt, t.ExpiresAt,
		t.Courtesies, t.Terms, t.CancellationPolicy, t.Slug, t.PDFDetailsURL,
		t.AirlineID, t.TermsConditionsID,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}

	return id, nil
}

func (s *tourStore) UpdateTour(ctx context.Context, t *domain.Tour) error {
	query := `
		UPDATE tours SET
			titulo = $2, descripcion = $3, duracion_dias = $4,
			fecha_publicacion = $5, fecha_caducidad = $6,
			cortesias = $7, terminos = $8, politica_cancelacion = $9,
			slug = $10, pdf_detalles_url = $11,
			aerolinea_id = $12, terminos_condiciones_id = $13,
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := s.tx.ExecContext(ctx, query,
		t.ID, t.Title, t.Description, t.DurationDays, t.PublishedAt, t.ExpiresAt,
		t.Courtesies, t.Terms, t.CancellationPolicy, t.Slug, t.PDFDetailsURL,
		t.AirlineID, t.TermsConditionsID,
	)
	if err != nil {
		return mapError(err)
	}

	return requireAffected(res, errors.ErrTourNotFound)
}

func (s *tourStore) DeleteTour(ctx context.Context, id int64) error {
	res, err := s.tx.ExecContext(ctx, `DELETE FROM tours WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	return requireAffected(res, errors.ErrTourNotFound)
}

func (s *tourStore) GetTourForUpdate(ctx context.Context, id int64) (*domain.Tour, error) {
	var tour domain.Tour
	err := s.tx.GetContext(ctx, &tour, `SELECT `+tourColumns+` FROM tours WHERE id = $1 FOR UPDATE`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrTourNotFound
	}
	if err != nil {
		return nil, mapError(err)
	}

	return &tour, nil
}

func (s *tourStore) SlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var taken bool
	err := s.tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tours WHERE slug = $1 AND id <> $2)`,
		slug, excludeID,
	).Scan(&taken)
	if err != nil {
		return false, mapError(err)
	}

	return taken, nil
}

// ============================================================================
// Направления
// ============================================================================

func (s *tourStore) ListDestinations(ctx context.Context, tourID int64) ([]domain.TourDestination, error) {
	var rows []domain.TourDestination
	err := s.tx.SelectContext(ctx, &rows,
		`SELECT id, tour_id, destino_id, orden FROM tour_destinos WHERE tour_id = $1 ORDER BY orden`,
		tourID,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return rows, nil
}

func (s *tourStore) InsertDestinations(ctx context.Context, rows []domain.TourDestination) error {
	for _, row := range rows {
		_, err := s.tx.ExecContext(ctx,
			`INSERT INTO tour_destinos (tour_id, destino_id, orden) VALUES ($1, $2, $3)`,
			row.TourID, row.DestinationID, row.Order,
		)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (s *tourStore) UpdateDestinations(ctx context.Context, rows []domain.TourDestination) error {
	for _, row := range rows {
		_, err := s.tx.ExecContext(ctx,
			`UPDATE tour_destinos SET orden = $3 WHERE tour_id = $1 AND destino_id = $2`,
			row.TourID, row.DestinationID, row.Order,
		)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (s *tourStore) DeleteDestinations(ctx context.Context, tourID int64, destinationIDs []int64) error {
	if len(destinationIDs) == 0 {
		return nil
	}
	_, err := s.tx.ExecContext(ctx,
		`DELETE FROM tour_destinos WHERE tour_id = $1 AND destino_id = ANY($2)`,
		tourID, pq.Array(destinationIDs),
	)
	return mapError(err)
}

// ============================================================================
// Выезды
// ============================================================================

func (s *tourStore) ListDepartures(ctx context.Context, tourID int64) ([]domain.Departure, error) {
	var rows []domain.Departure
	err := s.tx.SelectContext(ctx, &rows,
		`SELECT id, tour_id, fecha_salida, duracion_dias, cupos_disponibles
		FROM salidas WHERE tour_id = $1 ORDER BY fecha_salida NULLS LAST, id`,
		tourID,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return rows, nil
}

func (s *tourStore) InsertDepartures(ctx context.Context, rows []domain.Departure) error {
	for _, row := range rows {
		_, err := s.tx.ExecContext(ctx,
			`INSERT INTO salidas (tour_id, fecha_salida, duracion_dias, cupos_disponibles) VALUES ($1, $2, $3, $4)`,
			row.TourID, row.DepartureDate, row.DurationDays, row.AvailableSlots,
		)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (s *tourStore) UpdateDepartures(ctx context.Context, rows []domain.Departure) error {
	for _, row := range rows {
		_, err := s.tx.ExecContext(ctx,
			`UPDATE salidas SET fecha_salida = $3, duracion_dias = $4, cupos_disponibles = $5
			WHERE id = $1 AND tour_id = $2`,
			row.ID, row.TourID, row.DepartureDate, row.DurationDays, row.AvailableSlots,
		)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (s *tourStore) DeleteDepartures(ctx context.Context, tourID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.tx.ExecContext(ctx,
		`DELETE FROM salidas WHERE tour_id = $1 AND id = ANY($2)`,
		tourID, pq.Array(ids),
	)
	return mapError(err)
}

// ============================================================================
// Цены
// ============================================================================

func (s *tourStore) ListPrices(ctx context.Context, tourID int64) ([]domain.Price, error) {
	var rows []domain.Price
	err := s.tx.SelectContext(ctx, &rows,
		`SELECT id, tour_id, ciudad_salida, tipo_habitacion, forma_pago, precio
		FROM precios WHERE tour_id = $1 ORDER BY id`,
		tourID,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return rows, nil
}

func (s *tourStore) InsertPrices(ctx context.Context, rows []domain.Price) error {
	for _, row := range rows {
		_, err := s.tx.ExecContext(ctx,
			`INSERT INTO precios (tour_id, ciudad_salida, tipo_habitacion, forma_pago, precio) VALUES ($1, $2, $3, $4, $5)`,
			row.TourID, row.DepartureCity, row.RoomType, row.PaymentMethod, row.Amount,
		)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (s *tourStore) UpdatePrices(ctx context.Context, rows []domain.Price) error {
	for _, row := range rows {
		_, err := s.tx.ExecContext(ctx,
			`UPDATE precios SET ciudad_salida = $3, tipo_habitacion = $4, forma_pago = $5, precio = $6
			WHERE id = $1 AND tour_id = $2`,
			row.ID, row.TourID, row.DepartureCity, row.RoomType, row.PaymentMethod, row.Amount,
		)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (s *tourStore) DeletePrices(ctx context.Context, tourID int64, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.tx.ExecContext(ctx,
		`DELETE FROM precios WHERE tour_id = $1 AND id = ANY($2)`,
		tourID, pq.Array(ids),
	)
	return mapError(err)
}

// ============================================================================
// Включённые компоненты
// ============================================================================

func (s *tourStore) UpsertComponents(ctx context.Context, c domain.IncludedComponents) error {
	query := `
		INSERT INTO componentes_incluidos (
			tour_id, incluye_vuelo, incluye_hotel, incluye_transporte, incluye_comida,
			incluye_actividades, incluye_maleta_10kg, incluye_maleta_23kg, incluye_articulo_personal
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (tour_id) DO UPDATE SET
			incluye_vuelo = EXCLUDED.incluye_vuelo,
			incluye_hotel = EXCLUDED.incluye_hotel,
			incluye_transporte = EXCLUDED.incluye_transporte,
			incluye_comida = EXCLUDED.incluye_comida,
			incluye_actividades = EXCLUDED.incluye_actividades,
			incluye_maleta_10kg = EXCLUDED.incluye_maleta_10kg,
			incluye_maleta_23kg = EXCLUDED.incluye_maleta_23kg,
			incluye_articulo_personal = EXCLUDED.incluye_articulo_personal
	`

	_, err := s.tx.ExecContext(ctx, query,
		c.TourID, c.Flight, c.Hotel, c.Transport, c.Food,
		c.Activities, c.Baggage10kg, c.Baggage23kg, c.PersonalItem,
	)
	return mapError(err)
}

// ============================================================================
// Подарки
// ============================================================================

func (s *tourStore) ListGifts(ctx context.Context, tourID int64) ([]domain.TourGift, error) {
	var rows []domain.TourGift
	err := s.tx.SelectContext(ctx, &rows,
		`SELECT id, tour_id, regalo_id FROM tour_regalos WHERE tour_id = $1 ORDER BY id`,
		tourID,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return rows, nil
}

func (s *tourStore) InsertGifts(ctx context.Context, rows []domain.TourGift) error {
	for _, row := range rows {
		_, err := s.tx.ExecContext(ctx,
			`INSERT INTO tour_regalos (tour_id, regalo_id) VALUES ($1, $2)`,
			row.TourID, row.GiftID,
		)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (s *tourStore) DeleteGifts(ctx context.Context, tourID int64, giftIDs []int64) error {
	if len(giftIDs) == 0 {
		return nil
	}
	_, err := s.tx.ExecContext(ctx,
		`DELETE FROM tour_regalos WHERE tour_id = $1 AND regalo_id = ANY($2)`,
		tourID, pq.Array(giftIDs),
	)
	return mapError(err)
}

// ============================================================================
// Фото
// ============================================================================

func (s *tourStore) ListPhotos(ctx context.Context, tourID int64) ([]domain.TourPhoto, error) {
	var rows []domain.TourPhoto
	err := s.tx.SelectContext(ctx, &rows,
		`SELECT id, tour_id, url, orden FROM tour_fotos WHERE tour_id = $1 ORDER BY orden`,
		tourID,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return rows, nil
}

func (s *tourStore) InsertPhotos(ctx context.Context, rows []domain.TourPhoto) error {
	for _, row := range rows {
		_, err := s.tx.ExecContext(ctx,
			`INSERT INTO tour_fotos (tour_id, url, orden) VALUES ($1, $2, $3)`,
			row.TourID, row.URL, row.Order,
		)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (s *tourStore) UpdatePhotos(ctx context.Context, rows []domain.TourPhoto) error {
	for _, row := range rows {
		_, err := s.tx.ExecContext(ctx,
			`UPDATE tour_fotos SET orden = $3 WHERE tour_id = $1 AND url = $2`,
			row.TourID, row.URL, row.Order,
		)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (s *tourStore) DeletePhotos(ctx context.Context, tourID int64, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	_, err := s.tx.ExecContext(ctx,
		`DELETE FROM tour_fotos WHERE tour_id = $1 AND url = ANY($2)`,
		tourID, pq.Array(urls),
	)
	return mapError(err)
}

// requireAffected возвращает notFound, если запрос не затронул ни одной строки
func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
