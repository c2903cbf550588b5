package directory

import (
	"fmt"
	"strings"
)

// The upstream feature servers take an ArcGIS where-clause. Predicates are
// kept structured until the network boundary so escaping happens in exactly
// one place.

type predicateOp int

const (
	opSubstring predicateOp = iota // case-insensitive substring
	opExactFold                    // case-insensitive exact
	opExact                        // exact
)

type predicate struct {
	field string
	op    predicateOp
	value string
}

// escapeValue doubles single quotes so user input cannot terminate the
// string literal inside the clause.
func escapeValue(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

func (p predicate) clause() string {
	v := escapeValue(p.value)
	switch p.op {
	case opSubstring:
		return fmt.Sprintf("UPPER(%s) LIKE UPPER('%%%s%%')", p.field, v)
	case opExactFold:
		return fmt.Sprintf("UPPER(%s) = UPPER('%s')", p.field, v)
	default:
		return fmt.Sprintf("%s = '%s'", p.field, v)
	}
}

func whereClause(preds []predicate) string {
	clauses := make([]string, 0, len(preds))
	for _, p := range preds {
		clauses = append(clauses, p.clause())
	}
	return strings.Join(clauses, " AND ")
}
