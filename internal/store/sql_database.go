package store

import (
	"database/sql"

	"github.com/eunio-health/eunio-sync/internal/logger"
)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying. The Postgres implementation inspects driver error codes; the
// SQLite client store has no classifier because the local store never
// retries.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
