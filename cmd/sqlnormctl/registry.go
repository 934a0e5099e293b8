package main

import (
	"fmt"

	"github.com/honeynil/sqlnorm"
	"github.com/honeynil/sqlnorm/drivers/clickhouse"
	"github.com/honeynil/sqlnorm/drivers/cockroachdb"
	"github.com/honeynil/sqlnorm/drivers/mssql"
	"github.com/honeynil/sqlnorm/drivers/mysql"
	"github.com/honeynil/sqlnorm/drivers/oracle"
	"github.com/honeynil/sqlnorm/drivers/postgres"
	"github.com/honeynil/sqlnorm/drivers/sqlite"
	"github.com/honeynil/sqlnorm/drivers/ydb"
)

// driverConfigByName resolves a DriverConfig by the short name used in
// --driver and in the config file's per-environment "driver" key.
func driverConfigByName(name string) (sqlnorm.DriverConfig, error) {
	switch name {
	case "postgres", "postgresql":
		return postgres.New(), nil
	case "mysql":
		return mysql.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	case "mssql", "sqlserver":
		return mssql.New(), nil
	case "clickhouse":
		return clickhouse.New(), nil
	case "ydb":
		return ydb.New(), nil
	case "cockroachdb", "cockroach":
		return cockroachdb.New(), nil
	case "oracle":
		return oracle.New(), nil
	default:
		return sqlnorm.DriverConfig{}, fmt.Errorf("unknown driver %q (use one of: postgres, mysql, sqlite, mssql, clickhouse, ydb, cockroachdb, oracle)", name)
	}
}
