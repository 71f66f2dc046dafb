package mysql

import (
	"database/sql/driver"
	"errors"

	"collections-backend/internal/pkg/xerrors"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm/clause"
)

var (
	forUpdate  = clause.Locking{Strength: "UPDATE"}
	skipLocked = clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}
)

const (
	errLockWaitTimeout = 1205
	errDeadlock        = 1213
)

// classify marks lock and connection failures as transient so callers
// can retry the whole operation.
func classify(err error) error {
	if err == nil || errors.Is(err, xerrors.ErrTransient) {
		return err
	}
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) && (me.Number == errLockWaitTimeout || me.Number == errDeadlock) {
		return xerrors.Transient(err)
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysqldrv.ErrInvalidConn) {
		return xerrors.Transient(err)
	}
	return err
}
