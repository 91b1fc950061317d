// Package schema declares per-column contracts for the raw datasets and
// checks them against a loaded table before any join runs.
package schema

import "fmt"

// Kind is the semantic type declared for a column.
type Kind int

const (
	String Kind = iota
	Categorical
	Datetime
	Float
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Categorical:
		return "categorical"
	case Datetime:
		return "datetime"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Column declares one expected column: its semantic kind, whether its values
// must be pairwise distinct, and for categoricals the allowed value domain.
type Column struct {
	Name   string
	Kind   Kind
	Unique bool
	Domain []string
}

// Schema is the declared contract for one table.
type Schema struct {
	Table   string
	Columns []Column
}

// Table is the loaded-table view the validator checks: realized column
// kinds and the raw source values per column.
type Table interface {
	Kind(column string) (Kind, bool)
	Values(column string) []string
}

// Violation is a fatal schema error. It names the offending table, column
// and the constraint that failed; the run must not proceed past it.
type Violation struct {
	Table      string
	Column     string
	Constraint string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("schema violation: table %s, column %s: %s", v.Table, v.Column, v.Constraint)
}

// Validate checks the loaded table against the declared schema. It returns
// the first violation found: a missing column, a realized kind that does
// not match the declared one, a duplicate value in a unique column, or a
// categorical value outside the declared domain. It never repairs.
func (s Schema) Validate(t Table) error {
	for _, col := range s.Columns {
		got, ok := t.Kind(col.Name)
		if !ok {
			return &Violation{Table: s.Table, Column: col.Name, Constraint: "required column is missing"}
		}
		if got != col.Kind {
			return &Violation{
				Table:      s.Table,
				Column:     col.Name,
				Constraint: fmt.Sprintf("declared %s but loaded as %s", col.Kind, got),
			}
		}
		if col.Unique {
			if dup, ok := firstDuplicate(t.Values(col.Name)); ok {
				return &Violation{
					Table:      s.Table,
					Column:     col.Name,
					Constraint: fmt.Sprintf("uniqueness violated by value %q", dup),
				}
			}
		}
		if col.Kind == Categorical && len(col.Domain) > 0 {
			if bad, ok := firstOutsideDomain(t.Values(col.Name), col.Domain); ok {
				return &Violation{
					Table:      s.Table,
					Column:     col.Name,
					Constraint: fmt.Sprintf("value %q outside categorical domain", bad),
				}
			}
		}
	}
	return nil
}

func firstDuplicate(values []string) (string, bool) {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return v, true
		}
		seen[v] = struct{}{}
	}
	return "", false
}

func firstOutsideDomain(values []string, domain []string) (string, bool) {
	allowed := make(map[string]struct{}, len(domain))
	for _, d := range domain {
		allowed[d] = struct{}{}
	}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := allowed[v]; !ok {
			return v, true
		}
	}
	return "", false
}
