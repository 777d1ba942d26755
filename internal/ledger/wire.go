package ledger

import (
	"database/sql"

	"go.uber.org/zap"

	"vetstore/internal/ledger/repository"
	productrepo "vetstore/internal/product/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLLedgerRepository(db)
	products := productrepo.NewMySQLRepository(db)
	return NewController(NewService(repo, products, logger), logger)
}
