package account

import (
	"net/url"
	"strings"

	"github.com/baechuer/account-gateway/internal/domain"
)

// Field names a filterable column. Values are the wire names of the columns.
type Field string

const (
	FieldIDNumber Field = "IdNumber"
	FieldFullName Field = "FullName"
	FieldRole     Field = "Role"
)

// FilterableFields is the fixed evaluation order of predicates.
var FilterableFields = []Field{FieldIDNumber, FieldFullName, FieldRole}

// Predicate is a starts-with match of one field.
type Predicate struct {
	Field  Field
	Prefix string
}

// Filter is a conjunction of predicates. An empty Filter matches everything.
type Filter []Predicate

// BuildPartialMatchFilter turns optional field values into prefix predicates.
// A nil value leaves its field unconstrained; a present empty string still
// produces a predicate. Keys outside FilterableFields are ignored.
func BuildPartialMatchFilter(fields map[Field]*string) Filter {
	f := Filter{}
	for _, name := range FilterableFields {
		v, ok := fields[name]
		if !ok || v == nil {
			continue
		}
		f = append(f, Predicate{Field: name, Prefix: *v})
	}
	return f
}

// Has reports whether the filter constrains field.
func (f Filter) Has(field Field) bool {
	for _, p := range f {
		if p.Field == field {
			return true
		}
	}
	return false
}

// Matches evaluates the filter in memory, case-sensitively.
func (f Filter) Matches(a domain.UserAccount) bool {
	for _, p := range f {
		if !strings.HasPrefix(FieldValue(a, p.Field), p.Prefix) {
			return false
		}
	}
	return true
}

func FieldValue(a domain.UserAccount, field Field) string {
	switch field {
	case FieldIDNumber:
		return a.IDNumber
	case FieldFullName:
		return a.FullName
	case FieldRole:
		return a.Role
	}
	return ""
}

// SearchParams carries the optional search inputs of count and search.
type SearchParams struct {
	IDNumber *string
	FullName *string
	Role     *string
}

func (p SearchParams) Fields() map[Field]*string {
	return map[Field]*string{
		FieldIDNumber: p.IDNumber,
		FieldFullName: p.FullName,
		FieldRole:     p.Role,
	}
}

// ParamsFromQuery reads id_number, full_name and role. It returns nil when the
// query container itself is nil.
func ParamsFromQuery(q url.Values) *SearchParams {
	if q == nil {
		return nil
	}
	return &SearchParams{
		IDNumber: optional(q, "id_number"),
		FullName: optional(q, "full_name"),
		Role:     optional(q, "role"),
	}
}

func optional(q url.Values, key string) *string {
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key)
	return &v
}
