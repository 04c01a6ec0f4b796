package services

import (
	"errors"
	"strings"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SearchQuery is the common list query string.
type SearchQuery struct {
	Search  string `form:"search"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
	SortBy  string `form:"sort_by"`
	OrderBy string `form:"order_by" binding:"omitempty,oneof=ASC DESC asc desc"`
	Type    string `form:"type"`
	Status  string `form:"status"`
	Source  string `form:"source"`
}

// Page is one slice of a list plus its total row count.
type Page[T any] struct {
	Items []T
	utils.Pagination
}

// listSpec describes how a resource's list endpoint may be filtered and ordered.
type listSpec struct {
	searchColumn string
	sortable     map[string]bool
	defaultSort  string
	defaultDesc  bool
}

func (s listSpec) order(q SearchQuery) clause.OrderByColumn {
	col := s.defaultSort
	if s.sortable[q.SortBy] {
		col = q.SortBy
	}
	desc := s.defaultDesc
	if q.OrderBy != "" {
		desc = strings.EqualFold(q.OrderBy, "DESC")
	}
	return clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: desc}
}

func applySearch(db *gorm.DB, column, term string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" {
		return db
	}
	return db.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(term)+"%")
}

// applyEnum filters column = value unless value is empty or "All".
func applyEnum(db *gorm.DB, column, value string) *gorm.DB {
	if value == "" || value == models.FilterAll {
		return db
	}
	return db.Where(column+" = ?", value)
}

// applySource narrows owned resources: System rows, the caller's rows, or both.
// Admins listing "All" see every row.
func applySource(db *gorm.DB, source string, c utils.Caller) *gorm.DB {
	switch source {
	case models.SourceSystem:
		return db.Where("user_id IS NULL")
	case models.SourceMe:
		return db.Where("user_id = ?", c.ID)
	}
	if c.IsAdmin() {
		return db
	}
	return db.Where("(user_id IS NULL OR user_id = ?)", c.ID)
}

// paginate runs the page query and the count query against the same filters.
func paginate[T any](base *gorm.DB, spec listSpec, q SearchQuery) (*Page[T], error) {
	page, limit := utils.NormalizePage(q.Page, q.Limit)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}
	items := []T{}
	err := base.Session(&gorm.Session{}).
		Order(spec.order(q)).
		Offset(utils.Offset(page, limit)).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return &Page[T]{Items: items, Pagination: utils.NewPagination(page, limit, total)}, nil
}

func columns(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// authorize enforces the ownership predicate with a 403.
func authorize(owner *uint, c utils.Caller, msg string) error {
	if !utils.CanAccess(owner, c) {
		return utils.Forbidden(msg)
	}
	return nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func countWhere(db *gorm.DB, model any, query string, args ...any) (int64, error) {
	var n int64
	err := db.Model(model).Where(query, args...).Count(&n).Error
	return n, err
}
