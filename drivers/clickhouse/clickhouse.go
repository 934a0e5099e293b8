// Package clickhouse provides the sqlnorm DriverConfig for ClickHouse,
// backed by github.com/ClickHouse/clickhouse-go/v2.
//
// Like BigQuery's `@name` binds, clickhouse-go's `clickhouse.Named`
// wrapper natively expands a slice argument against an `IN (?)`
// placeholder, so HasNativeListExpansion is true here.
package clickhouse

import (
	_ "github.com/ClickHouse/clickhouse-go/v2" // registers "clickhouse" with database/sql for identity purposes only

	"github.com/honeynil/sqlnorm"
)

// Identity is the cache-key identity for the default New() config.
const Identity = "clickhouse"

// New returns the DriverConfig for ClickHouse's `@name` named binds.
func New() sqlnorm.DriverConfig {
	return sqlnorm.DriverConfig{
		Identity:                 Identity,
		DefaultParameterStyle:    sqlnorm.NAMED_AT,
		SupportedParameterStyles: sqlnorm.StyleSet(sqlnorm.NAMED_AT),
		HasNativeListExpansion:   true,
	}
}
