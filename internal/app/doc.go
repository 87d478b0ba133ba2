// Package app provides application initialization and lifecycle
// management for the reporting server. It wires configuration, logging,
// the dataset store, services, handlers and the HTTP server together
// and handles graceful shutdown.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//  1. Load configuration from environment and files
//  2. Initialize the structured logger
//  3. Create the dataset store and services
//  4. Set up HTTP handlers and middleware
//  5. Configure and start the HTTP server
//  6. Set up graceful shutdown handlers
//
// # Usage
//
// The main entry point is typically:
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// The package handles SIGINT and SIGTERM signals: active requests are
// given the configured shutdown timeout to complete and the log file is
// closed. Initialization errors are returned to the caller; the package
// never calls os.Exit() itself.
package app
