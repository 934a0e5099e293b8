// Package ydb provides the sqlnorm DriverConfig for YandexDB (YDB),
// backed by github.com/ydb-platform/ydb-go-sdk/v3.
//
// YDB/YQL declares parameters with `$name` binds — the NAMED_DOLLAR
// style — and the SDK expands a list-valued declared parameter against
// an `IN (?)` predicate on its own, so HasNativeListExpansion is true.
package ydb

import (
	_ "github.com/ydb-platform/ydb-go-sdk/v3" // registers "ydb" with database/sql for identity purposes only

	"github.com/honeynil/sqlnorm"
)

// Identity is the cache-key identity for the default New() config.
const Identity = "ydb"

// New returns the DriverConfig for YDB's `$name` declared parameters.
func New() sqlnorm.DriverConfig {
	return sqlnorm.DriverConfig{
		Identity:                 Identity,
		DefaultParameterStyle:    sqlnorm.NAMED_DOLLAR,
		SupportedParameterStyles: sqlnorm.StyleSet(sqlnorm.NAMED_DOLLAR),
		HasNativeListExpansion:   true,
	}
}
