// Package querybuilder assembles small SQL statements with neutral "?" bind
// variables. Callers rebind the final query for their driver
// (sqlx.DB.Rebind) before executing it.
package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

const bindVar = "?"

type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) raw(parts ...string) {
	for _, p := range parts {
		w.buf.WriteString(p)
	}
}

func (w *sqlWriter) bind(values ...any) {
	for i, v := range values {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString(bindVar)
		w.args = append(w.args, v)
	}
}

func (w *sqlWriter) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.raw(" WHERE ")
		} else {
			w.raw(" AND ")
		}
		c(w)
	}
}

func (w *sqlWriter) suffix(s string) {
	if s != "" {
		w.raw(" ", s)
	}
}

func (w *sqlWriter) done() (string, []any, error) {
	return w.buf.String(), w.args, nil
}

// Condition renders one predicate of a WHERE clause. Conditions are joined
// with AND.
type Condition func(w *sqlWriter)

func Eq(column string, value any) Condition {
	return func(w *sqlWriter) {
		w.raw(column, " = ")
		w.bind(value)
	}
}

// In matches nothing when values is empty.
func In(column string, values []any) Condition {
	return membership(column, "IN", values, "1=0")
}

// NotIn matches everything when values is empty.
func NotIn(column string, values []any) Condition {
	return membership(column, "NOT IN", values, "1=1")
}

func membership(column, op string, values []any, empty string) Condition {
	return func(w *sqlWriter) {
		if len(values) == 0 {
			w.raw(empty)
			return
		}
		w.raw(column, " ", op, " (")
		w.bind(values...)
		w.raw(")")
	}
}

func IsNull(column string) Condition {
	return func(w *sqlWriter) { w.raw(column, " IS NULL") }
}

// Expr inlines a raw predicate with its own bind variables.
func Expr(expr string, args ...any) Condition {
	return func(w *sqlWriter) {
		w.raw(expr)
		w.args = append(w.args, args...)
	}
}

// Args widens a typed slice for use with In and NotIn.
func Args[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

type SelectBuilder struct {
	columns []string
	table   string
	conds   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.conds = append(b.conds, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 || strings.TrimSpace(b.table) == "" {
		return "", nil, errors.New("select needs columns and a table")
	}

	var w sqlWriter
	w.raw("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.conds)
	if len(b.orderBy) > 0 {
		w.raw(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.raw(" LIMIT ", strconv.Itoa(b.limit))
	}
	return w.done()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = columns
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, values)
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" || len(b.columns) == 0 || len(b.rows) == 0 {
		return "", nil, errors.New("insert needs a table, columns and at least one row")
	}

	var w sqlWriter
	w.raw("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", i, len(row), len(b.columns))
		}
		if i > 0 {
			w.raw(", ")
		}
		w.raw("(")
		w.bind(row...)
		w.raw(")")
	}
	w.suffix(b.suffix)
	return w.done()
}

// InsertModel inserts one row built from the `db` tags of a struct.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).Columns(cols...).Values(vals...).Suffix(suffix).ToSQL()
}

func modelColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, errors.New("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a struct, got %s", value.Kind())
	}

	var cols []string
	var vals []any
	for _, field := range reflect.VisibleFields(value.Type()) {
		if !field.IsExported() || field.Anonymous {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		if name = strings.TrimSpace(name); name == "" || name == "-" {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, value.FieldByIndex(field.Index).Interface())
	}
	if len(cols) == 0 {
		return nil, nil, errors.New("model has no db columns")
	}
	return cols, vals, nil
}

type assignment struct {
	column string
	value  any
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	conds []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.conds = append(b.conds, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" || len(b.sets) == 0 {
		return "", nil, errors.New("update needs a table and at least one assignment")
	}

	var w sqlWriter
	w.raw("UPDATE ", b.table, " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(s.column, " = ")
		w.bind(s.value)
	}
	w.where(b.conds)
	return w.done()
}

type DeleteBuilder struct {
	table string
	conds []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.conds = append(b.conds, conditions...)
	return b
}

// ToSQL refuses to build an unconditional delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" || len(b.conds) == 0 {
		return "", nil, errors.New("delete needs a table and at least one condition")
	}

	var w sqlWriter
	w.raw("DELETE FROM ", b.table)
	w.where(b.conds)
	return w.done()
}
