// Package database opens the run ledger database.
//
// Connect wraps GORM and selects the dialector from Config.Driver: "sqlite" for a local
// file (the default) or ":memory:" in tests, "mysql" for a shared ledger.
//
// # Schema Inspection
//
// Deployments where the application account may not run DDL set auto_migrate to false.
// The ledger then checks the existing tables with TableColumns and MissingColumns
// instead of migrating them.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("ledger unavailable: %w", err)
//	}
//
//	missing, err := database.MissingColumns(db, "sync_runs", []string{"id", "kind"})
package database
