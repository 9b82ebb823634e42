// Package config loads the nutrimacro configuration.
//
// # Configuration Sources
//
// Values are resolved in order of precedence:
//
//	1. Environment variables NUTRI_* (highest priority)
//	2. YAML file from NUTRI_CONFIG_FILE, or nutrimacro.yaml / configs/nutrimacro.yaml
//	3. Default values (lowest priority)
//
// # Environment Variables
//
//	NUTRI_SERVER_PORT=7071
//	NUTRI_LOGGING_LEVEL=debug
//	NUTRI_STORAGE_CONTAINER=datasets
//	NUTRI_PATHS_RESULTS_FILE=simulated_nosql/results.json
//	NUTRI_TELEMETRY_TRACE_EXPORTER=stdout
//	NUTRI_RATE_LIMIT_ENABLED=true
//
// The storage connection string is not part of the struct: it is read from
// the variable named by Storage.ConnectionStringEnv (AzureWebJobsStorage by
// default) each time StorageConfig.ConnectionString is called. envconfig
// upper-cases keys, which would miss the mixed-case Functions host variable.
package config
