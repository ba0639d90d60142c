package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses configuration flags from args (without the program
// name).
//
// Flags:
//
//	-p http server port
//	-grpc-address gRPC health server address in format [host]:[port]
//	-prod production mode
//	-body-limit request body limit in bytes
//	-parameter-limit url-encoded parameter limit
//	-cors-origins comma separated CORS origins
//	-gzip enable the gzip plugin
//	-postgres-dsn postgres DSN
//	-sqlite-dsn sqlite DSN
//	-migrate run embedded migrations on every configured database
//	-c/-config json file path with configs
//	-token-sign-key bearer token signing key
//	-token-issuer bearer token issuer
//	-shutdown-timeout graceful shutdown timeout (e.g., "10s")
func ParseFlags(args []string) (*StructuredConfig, error) {
	var grpcAddress NetAddress
	var port int
	var productionMode bool
	var bodyLimit int64
	var parameterLimit int
	var corsOrigins string
	var gzipEnabled bool
	var postgresDSN, sqliteDSN string
	var runMigrations bool
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var shutdownTimeout time.Duration

	fs := flag.NewFlagSet("go-bootstrap", flag.ContinueOnError)
	fs.IntVar(&port, "p", 0, "HTTP server port")
	fs.Var(&grpcAddress, "grpc-address", "gRPC health server address host:port")
	fs.BoolVar(&productionMode, "prod", false, "Production mode")
	fs.Int64Var(&bodyLimit, "body-limit", 0, "Request body limit in bytes")
	fs.IntVar(&parameterLimit, "parameter-limit", 0, "URL-encoded parameter limit")
	fs.StringVar(&corsOrigins, "cors-origins", "", "Comma separated CORS origins")
	fs.BoolVar(&gzipEnabled, "gzip", false, "Enable gzip compression")
	fs.StringVar(&postgresDSN, "postgres-dsn", "", "Postgres DSN")
	fs.StringVar(&sqliteDSN, "sqlite-dsn", "", "SQLite DSN")
	fs.BoolVar(&runMigrations, "migrate", false, "Run embedded migrations")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Bearer token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Bearer token issuer")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout (e.g., 10s)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var origins []string
	if corsOrigins != "" {
		origins = strings.Split(corsOrigins, ",")
	}

	return &StructuredConfig{
		App: App{
			ProductionMode: productionMode,
			TokenSignKey:   tokenSignKey,
			TokenIssuer:    tokenIssuer,
		},
		Server: Server{
			Port:            port,
			GRPCAddress:     grpcAddress.String(),
			ShutdownTimeout: shutdownTimeout,
		},
		Middleware: Middleware{
			BodyLimit:          bodyLimit,
			ParameterLimit:     parameterLimit,
			CORSAllowedOrigins: origins,
			GZip:               gzipEnabled,
		},
		Storage: Storage{
			Postgres: DB{DSN: postgresDSN, RunMigrations: runMigrations && postgresDSN != ""},
			SQLite:   DB{DSN: sqliteDSN, RunMigrations: runMigrations && sqliteDSN != ""},
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string, or "" when nothing is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
