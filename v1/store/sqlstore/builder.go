package sqlstore

import (
	"strings"

	"github.com/Aleph-Alpha/gpucatalog/v1/filter"
)

// OrderBy is the List ordering: newest id first.
const OrderBy = "id DESC"

type flavor struct {
	like     string
	equality func(column string) string
}

var (
	mysqlFlavor = flavor{
		like:     "LIKE",
		equality: func(column string) string { return column + " = ?" },
	}

	// PostgreSQL compares text case-sensitively; these operators give the
	// case-insensitive matching MySQL's default collation provides.
	postgresFlavor = flavor{
		like:     "ILIKE",
		equality: func(column string) string { return "LOWER(" + column + ") = LOWER(?)" },
	}
)

// BuildWhere renders f as a WHERE predicate and its positional arguments,
// in MySQL syntax. The predicate always starts with "1=1"; every populated
// field adds one AND clause and its arguments in that order.
//
// Records with a NULL price pass every price bound.
func BuildWhere(f *filter.Set) (string, []any) {
	return buildWhere(f, mysqlFlavor)
}

// BuildWhereFor is BuildWhere for a given dialect ("mariadb" or
// "postgres").
func BuildWhereFor(dialect string, f *filter.Set) (string, []any) {
	if dialect == "postgres" {
		return buildWhere(f, postgresFlavor)
	}
	return buildWhere(f, mysqlFlavor)
}

func buildWhere(f *filter.Set, fl flavor) (string, []any) {
	var b strings.Builder
	b.WriteString("1=1")

	var args []any
	if f.IsEmpty() {
		return b.String(), args
	}

	add := func(clause string, values ...any) {
		b.WriteString(" AND ")
		b.WriteString(clause)
		args = append(args, values...)
	}

	if f.Search != nil {
		term := "%" + escapeLike(*f.Search) + "%"
		add("(name "+fl.like+" ? OR manufacturer "+fl.like+" ? OR model "+fl.like+" ?)", term, term, term)
	}
	if f.Manufacturer != nil {
		add(fl.equality("manufacturer"), *f.Manufacturer)
	}
	if f.MemoryType != nil {
		add(fl.equality("memory_type"), *f.MemoryType)
	}
	if f.MemoryMin != nil {
		add("memory_gb >= ?", *f.MemoryMin)
	}
	if f.MemoryMax != nil {
		add("memory_gb <= ?", *f.MemoryMax)
	}
	if f.PriceMin != nil {
		add("(price_usd IS NULL OR price_usd >= ?)", *f.PriceMin)
	}
	if f.PriceMax != nil {
		add("(price_usd IS NULL OR price_usd <= ?)", *f.PriceMax)
	}

	return b.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside a LIKE pattern using the
// default backslash escape.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
