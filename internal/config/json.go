package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of the configuration.
type StructuredJSONConfig struct {
	App struct {
		Name           string `json:"name"`
		ProductionMode bool   `json:"production_mode"`
		TokenSignKey   string `json:"token_sign_key"`
		TokenIssuer    string `json:"token_issuer"`
	} `json:"app,omitempty"`

	Server struct {
		Port            int      `json:"port"`
		GRPCAddress     string   `json:"grpc_address"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Middleware struct {
		BodyLimit          int64    `json:"body_limit"`
		ParameterLimit     int      `json:"parameter_limit"`
		CORSAllowedOrigins []string `json:"cors_allowed_origins"`
	} `json:"middleware,omitempty"`

	Storage struct {
		Postgres jsonDB `json:"postgres,omitempty"`
		SQLite   jsonDB `json:"sqlite,omitempty"`
	} `json:"storage,omitempty"`
}

type jsonDB struct {
	DSN           string `json:"dsn"`
	RunMigrations bool   `json:"run_migrations"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:           jsonCfg.App.Name,
			ProductionMode: jsonCfg.App.ProductionMode,
			TokenSignKey:   jsonCfg.App.TokenSignKey,
			TokenIssuer:    jsonCfg.App.TokenIssuer,
		},
		Server: Server{
			Port:            jsonCfg.Server.Port,
			GRPCAddress:     jsonCfg.Server.GRPCAddress,
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Middleware: Middleware{
			BodyLimit:          jsonCfg.Middleware.BodyLimit,
			ParameterLimit:     jsonCfg.Middleware.ParameterLimit,
			CORSAllowedOrigins: jsonCfg.Middleware.CORSAllowedOrigins,
		},
		Storage: Storage{
			Postgres: DB(jsonCfg.Storage.Postgres),
			SQLite:   DB(jsonCfg.Storage.SQLite),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
