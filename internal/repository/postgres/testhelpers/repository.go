package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/tour-microservice/internal/domain"
	"github.com/tour-microservice/internal/domain/repository"
	"github.com/tour-microservice/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewTourTxManagerForTest создает менеджер транзакций туров на тестовой базе
func NewTourTxManagerForTest(db *sqlx.DB, logger *zap.Logger) repository.TourTxManager {
	return postgres.NewTourTxManager(NewDBForTest(db, logger))
}

// NewTourReadRepositoryForTest создает репозиторий чтения туров на тестовой базе
func NewTourReadRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.TourReadRepository {
	return postgres.NewTourReadRepository(NewDBForTest(db, logger))
}

// NewAirlineRepositoryForTest создает репозиторий авиакомпаний на тестовой базе
func NewAirlineRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ReferenceRepository[domain.Airline] {
	return postgres.NewReferenceRepository(NewDBForTest(db, logger), postgres.AirlineTable())
}
