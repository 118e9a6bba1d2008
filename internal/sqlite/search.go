package sqlite

import (
	"context"
	"strings"

	"github.com/rpggio/showbill/internal/domain/show"
)

// Search performs a full-text prefix search over show title, client and job number
func (r *ShowRepository) Search(ctx context.Context, query string, limit int) ([]show.Show, error) {
	match := ftsQuery(query)
	if match == "" {
		return []show.Show{}, nil
	}

	baseQuery := `
		SELECT s.id, s.title, s.client_name, s.job_number, s.tax_rate, s.status,
			s.document_id, s.created_at, s.updated_at
		FROM shows_fts
		JOIN shows s ON s.rowid = shows_fts.rowid
		WHERE shows_fts MATCH ?
		ORDER BY rank, s.updated_at DESC
	`
	args := []any{match}

	if limit > 0 {
		baseQuery += " LIMIT ?"
		args = append(args, limit)
	}

	return r.query(ctx, "search shows", baseQuery, args...)
}

// ftsQuery turns free text into an FTS5 expression of quoted prefix terms,
// so user input can never be parsed as FTS syntax.
func ftsQuery(text string) string {
	var terms []string
	for _, field := range strings.Fields(text) {
		field = strings.ReplaceAll(field, `"`, "")
		if field == "" {
			continue
		}
		terms = append(terms, `"`+field+`"*`)
	}
	return strings.Join(terms, " ")
}
