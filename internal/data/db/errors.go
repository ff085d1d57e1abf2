package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/nexus-backend/internal/domain"
)

const pgUniqueViolation = "23505"

// IsDuplicate reports a unique-constraint violation from either driver.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// TranslateDuplicate rewrites a unique-constraint violation on entity into
// domain.ErrDuplicateEntity and passes every other error through.
func TranslateDuplicate(err error, entity string) error {
	if IsDuplicate(err) {
		return fmt.Errorf("%s: %w", entity, domain.ErrDuplicateEntity)
	}
	return err
}
