package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderByName       = "name"
	orderByImportedAt = "imported_at"
	orderByID         = "id"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByName:       "lower(name) ASC, id ASC",
	orderByImportedAt: "imported_at DESC, id ASC",
	orderByID:         "id ASC",
}

const defaultOrderBy = "id ASC"

const baseRawListingsSelect = `SELECT name, price, screen_size, ssd, cpu, ram, os, gpu, url
FROM raw_listings`

const countRawListingsSelect = "SELECT COUNT(*) FROM raw_listings"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a raw
// listing query. It returns the data query, the matching count query and
// the positional parameters shared by both.
func (q *RawListingQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.Search != nil && strings.TrimSpace(*q.Search) != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", paramIdx))
		args = append(args, likePattern(*q.Search))
		paramIdx++
	}

	if q.GPU != nil && strings.TrimSpace(*q.GPU) != "" {
		conditions = append(conditions, fmt.Sprintf("gpu ILIKE $%d", paramIdx))
		args = append(args, likePattern(*q.GPU))
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	orderClause := defaultOrderBy
	if col, ok := validOrderBy[q.OrderBy]; ok {
		orderClause = col
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)
	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseRawListingsSelect, whereClause, orderClause, limit, offset,
	)
	countSQL = countRawListingsSelect + whereClause

	return dataSQL, countSQL, args
}

// likePattern wraps s in % after escaping LIKE metacharacters.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}
