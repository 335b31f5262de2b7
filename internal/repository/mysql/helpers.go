package mysql

import (
	"database/sql"
	stderrors "errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL 唯一键冲突错误码
const errDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	return stderrors.As(err, &myErr) && myErr.Number == errDuplicateEntry
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
