// Package config provides configuration management for crm-sync.
//
// It utilizes Viper for loading configuration from environment variables, a .env
// file and an optional config.yaml. Defaults come from the `default` struct tags of
// each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, API key, upload limit
//   - Database: run ledger connection (sqlite or mysql)
//   - Storage: S3/MinIO archiving of inputs and reports
//   - Log: level, format and optional rotating file
//   - CRM: API base URL, token, pacing and circuit breaker
//   - Sync: batch size, source UTC offset, stage and pipeline label tables
//
// Environment variables map to nested keys by replacing dots with underscores, so
// CRM_TOKEN sets crm.token. The label tables are maps and can only be set in the
// YAML file.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.CRM.BaseURL)
package config
