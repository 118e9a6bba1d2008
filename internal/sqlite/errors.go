package sqlite

import (
	"strings"

	"github.com/rpggio/showbill/internal/repository"
)

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// mapWriteError converts constraint failures into repository errors.
func mapWriteError(err error) error {
	if isForeignKeyViolation(err) {
		return repository.ErrForeignKeyViolation
	}
	return err
}

func joinConditions(conditions []string) string {
	return strings.Join(conditions, " AND ")
}
