package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/lordsmint/portal-api/internal/domain"
	"github.com/lordsmint/portal-api/internal/erp"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	dateLayout      = "2006-01-02"
)

// utcNow matches the database NowFunc so stored and compared times agree
func utcNow() time.Time { return time.Now().UTC() }

// ListParams are the query options shared by the customer's transaction lists
type ListParams struct {
	Page      int
	PageSize  int
	Search    string
	FromDate  string
	ToDate    string
	Status    string
	SortBy    string
	SortOrder string
}

// normalizePagination clamps page and page size to sane values
func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// parseStatuses maps the status query value onto docstatus values.
// "all" (the default) covers drafts and submitted documents.
func parseStatuses(status string) ([]domain.DocStatus, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", "all":
		return []domain.DocStatus{domain.DocStatusDraft, domain.DocStatusSubmitted}, nil
	case "draft", "0":
		return []domain.DocStatus{domain.DocStatusDraft}, nil
	case "submitted", "1":
		return []domain.DocStatus{domain.DocStatusSubmitted}, nil
	case "cancelled", "2":
		return []domain.DocStatus{domain.DocStatusCancelled}, nil
	}
	return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
}

func validateDateRange(from, to string) error {
	var fromDate, toDate time.Time
	var err error
	if from != "" {
		if fromDate, err = time.Parse(dateLayout, from); err != nil {
			return fmt.Errorf("%w: fromDate must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	if to != "" {
		if toDate, err = time.Parse(dateLayout, to); err != nil {
			return fmt.Errorf("%w: toDate must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	if from != "" && to != "" && toDate.Before(fromDate) {
		return fmt.Errorf("%w: toDate is before fromDate", ErrInvalidInput)
	}
	return nil
}

// orderClause builds an order_by clause from whitelisted columns only
func orderClause(sortBy, sortOrder string, allowed map[string]string, fallback string) (string, error) {
	column := fallback
	if sortBy != "" {
		c, ok := allowed[sortBy]
		if !ok {
			return "", fmt.Errorf("%w: cannot sort by %q", ErrInvalidInput, sortBy)
		}
		column = c
	}
	direction := "desc"
	switch strings.ToLower(sortOrder) {
	case "", "desc":
	case "asc":
		direction = "asc"
	default:
		return "", fmt.Errorf("%w: sortOrder must be asc or desc", ErrInvalidInput)
	}
	return column + " " + direction, nil
}

// buildListFilter validates params into an ERP list filter for customer
func buildListFilter(customer string, p ListParams, sortable map[string]string, defaultSort string) (erp.ListFilter, error) {
	page, pageSize := normalizePagination(p.Page, p.PageSize)
	if err := validateDateRange(p.FromDate, p.ToDate); err != nil {
		return erp.ListFilter{}, err
	}
	statuses, err := parseStatuses(p.Status)
	if err != nil {
		return erp.ListFilter{}, err
	}
	orderBy, err := orderClause(p.SortBy, p.SortOrder, sortable, defaultSort)
	if err != nil {
		return erp.ListFilter{}, err
	}
	return erp.ListFilter{
		Customer:    customer,
		DocStatuses: statuses,
		FromDate:    p.FromDate,
		ToDate:      p.ToDate,
		Search:      strings.TrimSpace(p.Search),
		OrderBy:     orderBy,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

func pageResponse(data interface{}, rows int, f erp.ListFilter) *domain.PageResponse {
	return &domain.PageResponse{
		Data:     data,
		Page:     f.Page,
		PageSize: f.PageSize,
		HasMore:  rows >= f.PageSize,
	}
}
