// Package sqlite provides the sqlnorm DriverConfig for SQLite 3.8+,
// backed by github.com/mattn/go-sqlite3.
package sqlite

import (
	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" with database/sql for identity purposes only

	"github.com/honeynil/sqlnorm"
)

// Identity is the cache-key identity for the default New() config.
const Identity = "sqlite"

// New returns the DriverConfig for SQLite: default QMARK, accepting
// QMARK and NAMED_COLON as input, no native IN-list expansion.
func New() sqlnorm.DriverConfig {
	return sqlnorm.DriverConfig{
		Identity:                 Identity,
		DefaultParameterStyle:    sqlnorm.QMARK,
		SupportedParameterStyles: sqlnorm.StyleSet(sqlnorm.QMARK, sqlnorm.NAMED_COLON),
		HasNativeListExpansion:   false,
	}
}
