package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkolesnikov/tasklist/internal/flagx"
	"github.com/dkolesnikov/tasklist/internal/timex"
)

// JsonConfig is the DTO for the optional JSON config file. Interval fields
// use timex.Duration so both "30m" and integer nanoseconds parse.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags, if any. Missing flag means no file is loaded; an
// unreadable or invalid file panics, since starting with half-applied
// configuration is worse than not starting.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.BcryptCost = c.BcryptCost
}
