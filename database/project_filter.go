package database

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectFilter is the typed filter input for project queries. Zero
// values mean "no constraint"; all supplied predicates combine with AND,
// including Tags and Categories together.
type ProjectFilter struct {
	Query      string
	Status     []string
	Source     []string
	Tags       []uuid.UUID
	Categories []uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	IDs        []uuid.UUID
}

// IsZero reports whether no filter constraint is set.
func (f ProjectFilter) IsZero() bool {
	return f.Query == "" &&
		len(f.Status) == 0 &&
		len(f.Source) == 0 &&
		len(f.Tags) == 0 &&
		len(f.Categories) == 0 &&
		f.StartDate == nil &&
		f.EndDate == nil &&
		len(f.IDs) == 0
}

// Build translates the filter into SQL conditions and their arguments,
// deterministically and without touching the database. Conditions are
// returned in a fixed order so output is stable for a given filter.
func (f ProjectFilter) Build() (conds []string, args []any) {
	if f.Query != "" {
		pattern := "%" + strings.ToLower(f.Query) + "%"
		conds = append(conds, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		args = append(args, pattern, pattern)
	}

	if len(f.Status) > 0 {
		conds = append(conds, "status IN ?")
		args = append(args, f.Status)
	}

	if len(f.Source) > 0 {
		conds = append(conds, "source IN ?")
		args = append(args, f.Source)
	}

	if f.StartDate != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, *f.StartDate)
	}

	if f.EndDate != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, *f.EndDate)
	}

	// Tag and category membership intersect when both are present.
	if len(f.Tags) > 0 {
		conds = append(conds, "id IN (SELECT project_id FROM project_tags WHERE tag_id IN ?)")
		args = append(args, f.Tags)
	}

	if len(f.Categories) > 0 {
		conds = append(conds, "id IN (SELECT pt.project_id FROM project_tags pt JOIN tags t ON t.id = pt.tag_id WHERE t.category_id IN ?)")
		args = append(args, f.Categories)
	}

	if len(f.IDs) > 0 {
		conds = append(conds, "id IN ?")
		args = append(args, f.IDs)
	}

	return conds, args
}

// Apply attaches every built condition to the query.
func (f ProjectFilter) Apply(db *gorm.DB) *gorm.DB {
	conds, args := f.Build()
	i := 0
	for _, cond := range conds {
		n := strings.Count(cond, "?")
		db = db.Where(cond, args[i:i+n]...)
		i += n
	}
	return db
}
