package config

import (
	"os"
	"strconv"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort        string
	OperatorWorkers int

	// Repayment vault the UPI payment request points at.
	VaultUpiID string
	VaultName  string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		HTTPPort:         "9446",
		OperatorWorkers:  4,
		VaultName:        "Repayment Vault",
	}

	if v := os.Getenv("POSTGRES_ADDRESS"); v != "" {
		env.PostgresAddress = v
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		env.PostgresPort = v
	}
	if v := os.Getenv("POSTGRES_DB"); v != "" {
		env.PostgresDB = v
	}
	if v := os.Getenv("POSTGRES_USERNAME"); v != "" {
		env.PostgresUsername = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		env.PostgresPassword = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		env.HTTPPort = v
	}
	if v := os.Getenv("OPERATOR_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil && workers > 0 {
			env.OperatorWorkers = workers
		}
	}
	if v := os.Getenv("VAULT_UPI_ID"); v != "" {
		env.VaultUpiID = v
	}
	if v := os.Getenv("VAULT_NAME"); v != "" {
		env.VaultName = v
	}

	return &env, nil
}

// PostgresURL assembles the connection string used by the server and the
// migration runner.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" + c.PostgresPassword +
		"@" + c.PostgresAddress + ":" + c.PostgresPort + "/" + c.PostgresDB +
		"?sslmode=disable"
}
