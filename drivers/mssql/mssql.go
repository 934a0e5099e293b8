// Package mssql provides the sqlnorm DriverConfig for SQL Server 2012+
// and Azure SQL Database, backed by github.com/microsoft/go-mssqldb.
package mssql

import (
	"time"

	_ "github.com/microsoft/go-mssqldb" // registers "sqlserver" with database/sql for identity purposes only

	"github.com/honeynil/sqlnorm"
)

// Identity is the cache-key identity for the default New() config.
const Identity = "mssql"

// New returns the DriverConfig for SQL Server's `@name` named binds.
// go-mssqldb's TDS encoder expects a bare DATE bind as a time.Time at
// midnight UTC rather than a civil.Date, hence the DATE coercion below.
func New() sqlnorm.DriverConfig {
	return sqlnorm.DriverConfig{
		Identity:                 Identity,
		DefaultParameterStyle:    sqlnorm.NAMED_AT,
		SupportedParameterStyles: sqlnorm.StyleSet(sqlnorm.NAMED_AT, sqlnorm.POSITIONAL_COLON),
		HasNativeListExpansion:   false,
		TypeCoercionMap: map[sqlnorm.DataType]sqlnorm.TypeCoercion{
			sqlnorm.DataTypeDate: coerceDateToMidnightUTC,
		},
	}
}

func coerceDateToMidnightUTC(v any) any {
	if d, ok := v.(interface {
		In(*time.Location) time.Time
	}); ok {
		return d.In(time.UTC)
	}
	return v
}
