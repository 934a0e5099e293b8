// Package mysql provides the sqlnorm DriverConfig for MySQL 5.7+ and
// MariaDB 10.2+, backed by github.com/go-sql-driver/mysql.
//
// MySQL's native database/sql driver accepts pyformat-positional "?"
// binds (it rewrites them to "?" server-side regardless of input) but
// this package targets the pyformat binding family:
// POSITIONAL_PYFORMAT ("%s") as the execution style, with NAMED_PYFORMAT
// ("%(name)s") also accepted as an input style a caller's SQL may
// already be written in.
package mysql

import (
	_ "github.com/go-sql-driver/mysql" // registers "mysql" with database/sql for identity purposes only

	"github.com/honeynil/sqlnorm"
)

// Identity is the cache-key identity for the default New() config.
const Identity = "mysql"

// New returns the DriverConfig for MySQL: default POSITIONAL_PYFORMAT, accepting POSITIONAL_PYFORMAT and
// NAMED_PYFORMAT as input, no native IN-list expansion.
func New() sqlnorm.DriverConfig {
	return sqlnorm.DriverConfig{
		Identity:                 Identity,
		DefaultParameterStyle:    sqlnorm.POSITIONAL_PYFORMAT,
		SupportedParameterStyles: sqlnorm.StyleSet(sqlnorm.POSITIONAL_PYFORMAT, sqlnorm.NAMED_PYFORMAT),
		HasNativeListExpansion:   false,
	}
}
