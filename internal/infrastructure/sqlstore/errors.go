package sqlstore

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/martijn/clientbook/internal/core/repository"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var mysqlConstraintErrors = map[uint16]bool{
	1048: true, // ER_BAD_NULL_ERROR
	1062: true, // ER_DUP_ENTRY
	1451: true, // ER_ROW_IS_REFERENCED_2
	1452: true, // ER_NO_REFERENCED_ROW_2
	3819: true, // ER_CHECK_CONSTRAINT_VIOLATED
}

// persistenceError wraps a driver failure, keeping the driver's code when it has one.
func persistenceError(op string, err error) error {
	perr := &repository.PersistenceError{Op: op, Err: err}

	var (
		sqliteErr *sqlite.Error
		mysqlErr  *mysql.MySQLError
		pgErr     *pgconn.PgError
	)
	switch {
	case errors.As(err, &sqliteErr):
		code := sqliteErr.Code()
		perr.Code = strconv.Itoa(code)
		// Extended result codes carry the primary code in the low byte.
		perr.Constraint = code&0xff == sqlite3.SQLITE_CONSTRAINT
	case errors.As(err, &mysqlErr):
		perr.Code = strconv.Itoa(int(mysqlErr.Number))
		perr.Constraint = mysqlConstraintErrors[mysqlErr.Number]
	case errors.As(err, &pgErr):
		perr.Code = pgErr.Code
		// SQLSTATE class 23: integrity constraint violation
		perr.Constraint = strings.HasPrefix(pgErr.Code, "23")
	}

	return perr
}
