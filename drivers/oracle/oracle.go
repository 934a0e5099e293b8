// Package oracle provides the sqlnorm DriverConfig for Oracle Database,
// backed by github.com/godror/godror.
package oracle

import (
	_ "github.com/godror/godror" // registers "godror" with database/sql for identity purposes only

	"github.com/honeynil/sqlnorm"
)

// Identity is the cache-key identity for the default New() config.
const Identity = "oracle"

// New returns the DriverConfig for Oracle: NAMED_COLON (`:name`) as the
// default style, with POSITIONAL_COLON (`:1`) also accepted since
// godror binds positional colon parameters the same way as named ones.
// godror expands a slice bind against an `IN (?)` predicate itself.
func New() sqlnorm.DriverConfig {
	return sqlnorm.DriverConfig{
		Identity:                  Identity,
		DefaultParameterStyle:     sqlnorm.NAMED_COLON,
		SupportedParameterStyles:  sqlnorm.StyleSet(sqlnorm.NAMED_COLON, sqlnorm.POSITIONAL_COLON),
		HasNativeListExpansion:    true,
		AllowMixedParameterStyles: true,
	}
}
