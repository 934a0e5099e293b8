// Package postgres provides the sqlnorm DriverConfig for the PostgreSQL
// wire protocol, as consumed by github.com/jackc/pgx/v5.
package postgres

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" with database/sql for identity/type purposes only

	"github.com/honeynil/sqlnorm"
)

// Identity is the cache-key identity for the default New() config.
const Identity = "postgres"

// New returns the DriverConfig for PostgreSQL's native wire protocol:
// NUMERIC ($1, $2, ...) placeholders, no native IN-list expansion (pgx
// requires the caller to expand slices into individual binds when the
// target is a scalar column list), and a DECIMAL coercion that matches
// pgx's accepted bind types.
func New() sqlnorm.DriverConfig {
	return sqlnorm.DriverConfig{
		Identity:                 Identity,
		DefaultParameterStyle:    sqlnorm.NUMERIC,
		SupportedParameterStyles: sqlnorm.StyleSet(sqlnorm.NUMERIC),
		HasNativeListExpansion:   false,
		TypeCoercionMap:          typeCoercions(),
	}
}

// typeCoercions matches pgx's preferred wire representations: decimals
// are sent as strings (pgx has no native big.Rat bind). It has no entry
// for ARRAY or JSON values, which are passed through still wrapped.
func typeCoercions() map[sqlnorm.DataType]sqlnorm.TypeCoercion {
	return map[sqlnorm.DataType]sqlnorm.TypeCoercion{
		sqlnorm.DataTypeDecimal: func(v any) any {
			return fmt.Sprintf("%v", v)
		},
	}
}
