package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lumarise-backend/apperrors"
)

const PageSize = 20

// ListQuery carries the ?search, ?ordering and ?page parameters.
type ListQuery struct {
	Search   string
	Ordering string
	Page     int
}

// ListSpec declares which columns a resource searches and orders by.
type ListSpec struct {
	Search   []string
	Ordering []string
	Default  string
}

type Page[T any] struct {
	Items    []T
	Count    int64
	Number   int
	PageSize int
}

func (p *Page[T]) HasNext() bool {
	return int64(p.Number*p.PageSize) < p.Count
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 1
}

// ListPage filters, orders and slices a table. Scopes run on the item query
// only, so preloads do not affect the count.
func ListPage[T any](ctx context.Context, db *gorm.DB, spec ListSpec, q ListQuery, scopes ...func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	page := q.Page
	if page < 1 {
		page = 1
	}

	base := db.WithContext(ctx).Model(new(T))
	base = applySearch(base, spec.Search, q.Search)
	base = base.Session(&gorm.Session{})

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	offset := (page - 1) * PageSize
	if page > 1 && int64(offset) >= count {
		return nil, apperrors.New(apperrors.CodeNotFound, "invalid page")
	}

	items := make([]T, 0)
	query := applyOrdering(base, spec, q.Ordering).Scopes(scopes...)
	if err := query.Limit(PageSize).Offset(offset).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return &Page[T]{Items: items, Count: count, Number: page, PageSize: PageSize}, nil
}

// searchTerms splits on whitespace and commas.
func searchTerms(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

// applySearch requires every term to match at least one column,
// case-insensitively.
func applySearch(db *gorm.DB, fields []string, raw string) *gorm.DB {
	if len(fields) == 0 {
		return db
	}
	textType := "TEXT"
	if db.Dialector.Name() == "mysql" {
		textType = "CHAR"
	}

	for _, term := range searchTerms(raw) {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		conds := make([]clause.Expression, 0, len(fields))
		for _, field := range fields {
			conds = append(conds, clause.Expr{
				SQL:  "LOWER(CAST(? AS " + textType + ")) LIKE ? ESCAPE '!'",
				Vars: []any{clause.Column{Name: field}, pattern},
			})
		}
		if len(conds) == 1 {
			db = db.Where(conds[0])
		} else {
			db = db.Where(clause.Or(conds...))
		}
	}
	return db
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// applyOrdering parses "a,-b". Fields outside spec.Ordering are dropped; id
// descending is always the final tiebreak.
func applyOrdering(db *gorm.DB, spec ListSpec, raw string) *gorm.DB {
	columns := parseOrdering(spec.Ordering, raw)
	if len(columns) == 0 {
		columns = parseOrdering(nil, spec.Default)
	}

	hasID := false
	for _, col := range columns {
		if col.Column.Name == "id" {
			hasID = true
		}
		db = db.Order(col)
	}
	if !hasID {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true})
	}
	return db
}

// parseOrdering keeps fields present in allowed; a nil allowed list accepts
// everything (used for trusted defaults).
func parseOrdering(allowed []string, raw string) []clause.OrderByColumn {
	var out []clause.OrderByColumn
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		if name == "" {
			continue
		}
		if allowed != nil && !slices.Contains(allowed, name) {
			continue
		}
		out = append(out, clause.OrderByColumn{Column: clause.Column{Name: name}, Desc: desc})
	}
	return out
}
