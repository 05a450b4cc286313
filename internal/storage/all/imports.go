// Package all registers every storage backend via blank imports. Import this
// package from the binary entry point to make all kinds available through
// storage.New.
package all

import (
	_ "posetl/internal/storage/mssql"
	_ "posetl/internal/storage/mysql"
	_ "posetl/internal/storage/postgres"
	_ "posetl/internal/storage/sqlite"
)
