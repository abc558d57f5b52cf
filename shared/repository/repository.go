package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sort"
	"strings"

	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/shared/constant"
	"guesthouse/shared/dto"
	"guesthouse/shared/logger"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

// ErrNoRowsAffected is returned by Update and UpdateTx when the filter matched no row.
var ErrNoRowsAffected = errors.New("no rows affected")

// runner is satisfied by both *sqlx.DB and *sqlx.Tx.
type runner interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

type column struct {
	name  string
	table string
	alias string
}

func (c column) selectExpr() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	default:
		return c.table + "." + c.name
	}
}

// Repository is the table gateway embedded by every domain repository.
// Columns come from the db, table and column tags of T. A T exposing
// GetJoinQuery() string gets that clause appended to its reads.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	insertColumns []string
	join          string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if joiner, ok := any(zero).(interface{ GetJoinQuery() string }); ok {
		join = joiner.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		insertColumns: insertColumns,
		join:          join,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
}

func (repo *Repository[T]) fail(scope otel.Scope, err error, action string) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.scope(ctx, "Insert")
	defer scope.End()

	placeholders := make([]string, len(repo.insertColumns))
	for i, col := range repo.insertColumns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.insertColumns, ", "), strings.Join(placeholders, ", "))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, model); err != nil {
		return repo.fail(scope, err, "insert data")
	}

	return nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var exist bool
	if err := repo.getOne(ctx, repo.db.Read, query, &exist, args); err != nil {
		return false, repo.fail(scope, err, "check exist data")
	}

	return exist, nil
}

// Get returns the first matching row, or the zero T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectList(columns), repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var model T

	err := repo.getOne(ctx, repo.db.Read, query, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, err, "get data")
	}

	return model, nil
}

// GetForUpdateTx reads one row and holds a row lock on it until sqltx ends.
// A missing row yields the zero value of T, like Get.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "GetForUpdateTx")
	defer scope.End()

	var model T

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return model, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s FOR UPDATE OF %s", repo.selectList(columns), repo.table, repo.join, where, repo.table)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err := repo.getOne(ctx, sqltx, query, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, err, "lock data")
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)

	clauses := []string{fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectList(columns), repo.table, repo.join, where)}

	if order := params.OrderBy(); order != "" {
		clauses = append(clauses, "ORDER BY "+order)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		clauses = append(clauses, "LIMIT :limit")

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			clauses = append(clauses, "OFFSET :offset")
		}
	}

	query := strings.Join(clauses, " ")
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var models []T

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return models, repo.fail(scope, err, "prepare statement")
	}
	defer stmt.Close()

	if err = stmt.SelectContext(ctx, &models, args); err != nil {
		return models, repo.fail(scope, err, "get all data")
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int
	if err := repo.getOne(ctx, repo.db.Read, query, &count, args); err != nil {
		return 0, repo.fail(scope, err, "count data")
	}

	return count, nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Delete")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	query := fmt.Sprintf("DELETE FROM %s %s", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		return repo.fail(scope, err, "delete data")
	}

	return nil
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	return repo.update(ctx, repo.db.Write, mod, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "UpdateTx")
	defer scope.End()

	return repo.update(ctx, sqltx, mod, filter)
}

// update refuses to run without a filter so a bad call can never rewrite the whole table.
func (repo *Repository[T]) update(ctx context.Context, exec runner, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "update")
	defer scope.End()

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	cols := slices.Collect(maps.Keys(mod))
	sort.Strings(cols)

	assignments := make([]string, len(cols))
	for i, col := range cols {
		assignments[i] = fmt.Sprintf("%s = :%s", col, col)
	}

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(assignments, ", "), where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)
	maps.Copy(args, mod)

	result, err := exec.NamedExecContext(ctx, query, args)
	if err != nil {
		return repo.fail(scope, err, "update data")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return repo.fail(scope, err, "count updated rows")
	}

	if affected == 0 {
		return fmt.Errorf("failed to update data (%s): %w", repo.entity, ErrNoRowsAffected)
	}

	return nil
}

func (repo *Repository[T]) getOne(ctx context.Context, exec runner, query string, dest any, args map[string]any) error {
	stmt, err := exec.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	return stmt.GetContext(ctx, dest, args) //nolint:wrapcheck
}

func (repo *Repository[T]) selectList(only []string) string {
	exprs := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

// BuildWhereClause renders filter as a WHERE clause with its named arguments.
// An empty filter yields an empty clause and an empty, writable map.
func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return fmt.Sprintf(" WHERE %s ", where), args
}

// getColumns walks T's fields, flattening embedded structs. Fields tagged with
// a foreign table are read through the join but never inserted.
func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := getColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" {
			owner = table
		}

		if owner == table {
			insertColumns = append(insertColumns, dbTag)
		}

		if source := field.Tag.Get("column"); source != "" {
			columns = append(columns, column{name: source, table: owner, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: owner})
		}
	}

	return columns, insertColumns
}
