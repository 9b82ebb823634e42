package config

import "time"

// Application constants
const (
	AppName    = "nutrimacro"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every envconfig variable (NUTRI_SERVER_PORT, ...)
	EnvPrefix = "NUTRI"
	// ConfigFileEnv points at an optional YAML config file
	ConfigFileEnv = "NUTRI_CONFIG_FILE"
)

// Storage defaults. The connection string variable name is the one the
// Azure Functions host uses, so it is read verbatim from the environment.
const (
	DefaultConnectionStringEnv = "AzureWebJobsStorage"
	DefaultContainer           = "datasets"
	DefaultBlob                = "All_Diets.csv"
	AzuriteAPIVersion          = "2021-12-02"
)

// File locations, relative to the working directory
const (
	DefaultResultsFile = "simulated_nosql/results.json"
	DefaultInputCSV    = "All_Diets.csv"
	DefaultChartsDir   = "charts"
	DefaultLogFile     = "logs/app.log"
)

// Analysis constants
const (
	TopProteinLimit = 5
)

// Server defaults
const (
	DefaultPort            = 7071
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 5 * time.Minute
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

// Messages returned by the ingestion flow
const (
	SuccessMessage = "Data processed and stored successfully."
)
