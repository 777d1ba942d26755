package product

import (
	"database/sql"

	"go.uber.org/zap"

	"vetstore/internal/product/repository"
)

// NewModule returns the HTTP controller and the catalog service, which the
// order module uses for its existence pre-check.
func NewModule(db *sql.DB, logger *zap.Logger) (*Controller, Service) {
	repo := repository.NewMySQLRepository(db)
	svc := NewService(repo)
	uc := NewUseCase(svc)
	return NewController(uc, logger), svc
}
