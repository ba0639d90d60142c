package database

import "context"

//go:generate mockgen -source=module.go -destination=../mock/database_module_mock.go -package=mock

// Module is a single database connection declared by the application.
type Module interface {
	// Name identifies the module in the registry and in logs.
	Name() string

	// Connection configures the module before Connect. verbose enables
	// statement logging.
	Connection(verbose bool)

	// Connect opens the connection. It must honour ctx cancellation.
	Connect(ctx context.Context) error

	// Models returns the models known to the connected database, keyed by
	// model name. Called only after a successful Connect.
	Models() map[string]Model
}

// Model describes one table or collection exposed by a database.
type Model struct {
	Name    string
	Columns []string
}
