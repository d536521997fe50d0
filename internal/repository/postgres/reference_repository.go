package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/pkg/errors"
)

// ReferenceTable описывает таблицу справочника
type ReferenceTable[T domain.Reference] struct {
	Name string
	// Columns - изменяемые колонки в порядке значений Values
	Columns []string
	OrderBy string
	Values  func(entity *T) []interface{}
	// ReferencedBy - подзапросы с $1 = id, находящие ссылки на запись
	ReferencedBy []string
}

// AirlineTable - таблица aerolineas
func AirlineTable() ReferenceTable[domain.Airline] {
	return ReferenceTable[domain.Airline]{
		Name:    "aerolineas",
		Columns: []string{"nombre", "codigo_iata", "logo_url"},
		OrderBy: "nombre",
		Values: func(a *domain.Airline) []interface{} {
			return []interface{}{a.Name, a.IATACode, a.LogoURL}
		},
		ReferencedBy: []string{"SELECT 1 FROM tours WHERE aerolinea_id = $1"},
	}
}

// DestinationTable - таблица destinos
func DestinationTable() ReferenceTable[domain.Destination] {
	return ReferenceTable[domain.Destination]{
		Name:    "destinos",
		Columns: []string{"nombre", "pais", "descripcion", "imagen_url"},
		OrderBy: "nombre",
		Values: func(d *domain.Destination) []interface{} {
			return []interface{}{d.Name, d.Country, d.Description, d.ImageURL}
		},
		ReferencedBy: []string{"SELECT 1 FROM tour_destinos WHERE destino_id = $1"},
	}
}

// GiftTable - таблица regalos
func GiftTable() ReferenceTable[domain.Gift] {
	return ReferenceTable[domain.Gift]{
		Name:    "regalos",
		Columns: []string{"nombre", "descripcion"},
		OrderBy: "nombre",
		Values: func(g *domain.Gift) []interface{} {
			return []interface{}{g.Name, g.Description}
		},
		ReferencedBy: []string{"SELECT 1 FROM tour_regalos WHERE regalo_id = $1"},
	}
}

// TermsTable - таблица terminos_condiciones
func TermsTable() ReferenceTable[domain.TermsAndConditions] {
	return ReferenceTable[domain.TermsAndConditions]{
		Name:    "terminos_condiciones",
		Columns: []string{"titulo", "contenido"},
		OrderBy: "titulo",
		Values: func(t *domain.TermsAndConditions) []interface{} {
			return []interface{}{t.Title, t.Content}
		},
		ReferencedBy: []string{"SELECT 1 FROM tours WHERE terminos_condiciones_id = $1"},
	}
}

type referenceRepository[T domain.Reference] struct {
	db     *sqlx.DB
	logger *zap.Logger
	table  ReferenceTable[T]
	cols   string
}

// NewReferenceRepository создает CRUD-репозиторий для таблицы справочника
func NewReferenceRepository[T domain.Reference](db *DB, table ReferenceTable[T]) repository.ReferenceRepository[T] {
	return &referenceRepository[T]{
		db:     db.DB,
		logger: db.logger.With(zap.String("table", table.Name)),
		table:  table,
		cols:   "id, " + strings.Join(table.Columns, ", ") + ", created_at",
	}
}

func (r *referenceRepository[T]) List(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s, id", r.cols, r.table.Name, r.table.OrderBy)

	var items []T
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		r.logger.Error("Failed to list reference rows", zap.Error(err))
		return nil, mapError(err)
	}

	return items, nil
}

func (r *referenceRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.cols, r.table.Name)

	var item T
	err := r.db.GetContext(ctx, &item, query, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get reference row", zap.Int64("id", id), zap.Error(err))
		return nil, mapError(err)
	}

	return &item, nil
}

// Create вставляет строку; id выдаёт BIGSERIAL
func (r *referenceRepository[T]) Create(ctx context.Context, entity *T) (int64, error) {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		r.table.Name,
		strings.Join(r.table.Columns, ", "),
		placeholders(1, len(r.table.Columns)),
	)

	var id int64
	if err := r.db.QueryRowContext(ctx, query, r.table.Values(entity)...).Scan(&id); err != nil {
		r.logger.Error("Failed to create reference row", zap.Error(err))
		return 0, mapError(err)
	}

	return id, nil
}

func (r *referenceRepository[T]) Update(ctx context.Context, id int64, entity *T) error {
	sets := make([]string, len(r.table.Columns))
	for i, col := range r.table.Columns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+2)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $1", r.table.Name, strings.Join(sets, ", "))

	args := append([]interface{}{id}, r.table.Values(entity)...)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update reference row", zap.Int64("id", id), zap.Error(err))
		return mapError(err)
	}

	return requireAffected(res, errors.ErrNotFound)
}

func (r *referenceRepository[T]) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table.Name), id)
	if err != nil {
		// ссылка появилась между проверкой и удалением
		if isForeignKeyViolation(err) {
			return errors.ErrReferenceInUse.Wrap(err)
		}
		r.logger.Error("Failed to delete reference row", zap.Int64("id", id), zap.Error(err))
		return mapError(err)
	}

	return requireAffected(res, errors.ErrNotFound)
}

func (r *referenceRepository[T]) IsReferenced(ctx context.Context, id int64) (bool, error) {
	if len(r.table.ReferencedBy) == 0 {
		return false, nil
	}

	checks := make([]string, len(r.table.ReferencedBy))
	for i, sub := range r.table.ReferencedBy {
		checks[i] = "EXISTS(" + sub + ")"
	}

	var referenced bool
	if err := r.db.GetContext(ctx, &referenced, "SELECT "+strings.Join(checks, " OR "), id); err != nil {
		r.logger.Error("Failed to check references", zap.Int64("id", id), zap.Error(err))
		return false, mapError(err)
	}

	return referenced, nil
}
