package erp

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Filter is one ERP list filter. ChildDoctype targets a field of a child
// table, e.g. Delivery Note Item.against_sales_order.
type Filter struct {
	ChildDoctype string
	Field        string
	Op           string
	Value        interface{}
}

// MarshalJSON encodes the positional form the ERP expects
func (f Filter) MarshalJSON() ([]byte, error) {
	if f.ChildDoctype != "" {
		return json.Marshal([]interface{}{f.ChildDoctype, f.Field, f.Op, f.Value})
	}
	return json.Marshal([]interface{}{f.Field, f.Op, f.Value})
}

func Eq(field string, value interface{}) Filter {
	return Filter{Field: field, Op: "=", Value: value}
}

func Like(field, term string) Filter {
	return Filter{Field: field, Op: "like", Value: "%" + term + "%"}
}

func In(field string, values interface{}) Filter {
	return Filter{Field: field, Op: "in", Value: values}
}

func Gte(field string, value interface{}) Filter {
	return Filter{Field: field, Op: ">=", Value: value}
}

func Lte(field string, value interface{}) Filter {
	return Filter{Field: field, Op: "<=", Value: value}
}

// ChildEq filters parents by a field of their child rows
func ChildEq(childDoctype, field string, value interface{}) Filter {
	return Filter{ChildDoctype: childDoctype, Field: field, Op: "=", Value: value}
}

// AllRows as PageLength asks the ERP for an unbounded list
const AllRows = -1

// ListQuery is the query string of a resource list request
type ListQuery struct {
	Fields     []string
	Filters    []Filter
	OrderBy    string
	Start      int
	PageLength int
}

// Values encodes q. Zero PageLength leaves the ERP default in place.
func (q ListQuery) Values() (url.Values, error) {
	v := url.Values{}
	if len(q.Fields) > 0 {
		b, err := json.Marshal(q.Fields)
		if err != nil {
			return nil, fmt.Errorf("encode fields: %w", err)
		}
		v.Set("fields", string(b))
	}
	if len(q.Filters) > 0 {
		b, err := json.Marshal(q.Filters)
		if err != nil {
			return nil, fmt.Errorf("encode filters: %w", err)
		}
		v.Set("filters", string(b))
	}
	if q.OrderBy != "" {
		v.Set("order_by", q.OrderBy)
	}
	if q.Start > 0 {
		v.Set("limit_start", strconv.Itoa(q.Start))
	}
	switch {
	case q.PageLength > 0:
		v.Set("limit_page_length", strconv.Itoa(q.PageLength))
	case q.PageLength == AllRows:
		v.Set("limit_page_length", "0")
	}
	return v, nil
}

// Offset converts a 1-based page into limit_start
func Offset(page, pageSize int) int {
	if page < 1 || pageSize < 1 {
		return 0
	}
	return (page - 1) * pageSize
}
