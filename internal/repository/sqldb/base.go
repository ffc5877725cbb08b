package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

const (
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
	mysqlLockDeadlock      = 1213
	mysqlLockWaitTimeout   = 1205
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db *sqlx.DB
}

func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{db: db}
}

// WithTx executes fn within a transaction opened with opts.
func (r *BaseRepository) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// selectRecords runs a column-agnostic SELECT and returns each row keyed by
// column name. Values the driver hands back as []byte (every column under the
// MySQL text protocol, NUMERIC under postgres) are decoded by the column's
// declared type: integers and decimals become numbers, the rest strings.
func (r *BaseRepository) selectRecords(ctx context.Context, query string) ([]model.Record, error) {
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	kinds := make(map[string]columnKind, len(columns))
	for _, col := range columns {
		kinds[col.Name()] = kindOf(col.DatabaseTypeName())
	}

	records := []model.Record{}
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = decodeText(kinds[k], string(b))
			}
		}
		records = append(records, model.Record(row))
	}

	return records, rows.Err()
}

type columnKind int

const (
	kindText columnKind = iota
	kindInteger
	kindDecimal
)

// kindOf classifies a driver type name such as "INT", "UNSIGNED BIGINT",
// "INT8" or "NUMERIC".
func kindOf(dbType string) columnKind {
	switch strings.TrimPrefix(strings.ToUpper(dbType), "UNSIGNED ") {
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT", "YEAR",
		"INT2", "INT4", "INT8":
		return kindInteger
	case "DECIMAL", "NUMERIC", "FLOAT", "DOUBLE", "REAL", "FLOAT4", "FLOAT8":
		return kindDecimal
	default:
		return kindText
	}
}

// decodeText falls back to the raw string when the value does not parse.
func decodeText(kind columnKind, s string) interface{} {
	switch kind {
	case kindInteger:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if n, err := strconv.ParseUint(s, 10, 64); err == nil {
			return n
		}
	case kindDecimal:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// isContention reports whether err is the database aborting a transaction
// because of a concurrent one.
func isContention(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqSerializationFailure || pqErr.Code == pqDeadlockDetected
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlLockDeadlock || myErr.Number == mysqlLockWaitTimeout
	}
	return false
}

func wrapTxError(err error, msg string) error {
	if isContention(err) {
		return fmt.Errorf("%s: %w: %v", msg, repository.ErrSlotContention, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
