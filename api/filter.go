package api

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DateLayout is the wire format for all dates in filters, forms and exports.
const DateLayout = "2006-01-02"

// FilterAll disables an enum filter dimension.
const FilterAll = "all"

// ListFilter is the normalized filter descriptor applied to listing, export
// and subtotal queries. A nil date bound means that bound is not applied.
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
	Kind      string
}

// ResolveListFilter normalizes raw filter inputs. Malformed dates and
// unrecognized enum values degrade silently to "unconstrained"; they are
// never an error. The search term is trimmed and lowercased, vocab is the
// set of recognized enum values for the entity kind and FilterAll always
// means unconstrained.
func ResolveListFilter(startStr, endStr, search, kind string, vocab []string) ListFilter {
	f := ListFilter{
		StartDate: parseFilterDate(startStr),
		EndDate:   parseFilterDate(endStr),
		Search:    strings.ToLower(strings.TrimSpace(search)),
	}
	if kind != FilterAll {
		for _, v := range vocab {
			if kind == v {
				f.Kind = kind
				break
			}
		}
	}
	return f
}

// parseFilterDate parses a YYYY-MM-DD bound, returning nil on any failure.
func parseFilterDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// ApplyDateRange constrains column to the filter's date range, inclusive on
// both ends. Date columns store midnight values, so plain comparison keeps
// both bounds inclusive.
func (f ListFilter) ApplyDateRange(tx *gorm.DB, column string) *gorm.DB {
	if f.StartDate != nil {
		tx = tx.Where(column+" >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		tx = tx.Where(column+" <= ?", *f.EndDate)
	}
	return tx
}

// ApplySearch adds a case-insensitive substring match, OR'd across columns.
func (f ListFilter) ApplySearch(tx *gorm.DB, columns ...string) *gorm.DB {
	if f.Search == "" || len(columns) == 0 {
		return tx
	}
	like := "%" + f.Search + "%"
	conds := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, "LOWER("+col+") LIKE ?")
		args = append(args, like)
	}
	return tx.Where(strings.Join(conds, " OR "), args...)
}

// ApplyKind adds the exact-match enum constraint when one is set.
func (f ListFilter) ApplyKind(tx *gorm.DB, column string) *gorm.DB {
	if f.Kind == "" {
		return tx
	}
	return tx.Where(column+" = ?", f.Kind)
}

// Today returns the current UTC date at midnight.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// parseRecordDate parses a submitted record date, falling back to today's
// date when the field is absent or unparseable.
func parseRecordDate(s string) time.Time {
	if s == "" {
		return Today()
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Today()
	}
	return t
}
