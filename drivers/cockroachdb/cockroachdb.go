// Package cockroachdb provides the sqlnorm DriverConfig for
// CockroachDB, which speaks the PostgreSQL wire protocol and is reached
// through the same github.com/jackc/pgx/v5 driver as drivers/postgres.
package cockroachdb

import (
	"github.com/honeynil/sqlnorm"
	"github.com/honeynil/sqlnorm/drivers/postgres"
)

// Identity is the cache-key identity for the default New() config.
// Kept distinct from postgres.Identity per driverconfig.go's Identity
// doc comment: "two configs for the same product with different
// supported styles need different identities" — CockroachDB additionally
// tolerates QMARK on older client libraries that haven't migrated to
// numeric binds, which the stock PostgreSQL config does not.
const Identity = "cockroachdb"

// New returns the DriverConfig for CockroachDB: NUMERIC binds over the
// PostgreSQL wire protocol, with QMARK also accepted as input.
func New() sqlnorm.DriverConfig {
	cfg := postgres.New()
	cfg.Identity = Identity
	cfg.SupportedParameterStyles = sqlnorm.StyleSet(sqlnorm.NUMERIC, sqlnorm.QMARK)
	return cfg
}
