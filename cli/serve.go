// ABOUTME: HTTP server subcommand
// ABOUTME: Starts the admin JSON API
package cli

import (
	"database/sql"
	"flag"

	"github.com/opsdeck/opsdeck/outbox"
	"github.com/opsdeck/opsdeck/web"
)

// ServeCommand starts the admin API server
func ServeCommand(database *sql.DB, box *outbox.Store, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", 8080, "Port to listen on")
	uploadDir := fs.String("uploads", "uploads", "Directory for uploaded document files")
	fs.Parse(args)

	server := web.NewServer(database, box, *uploadDir)
	return server.Start(*port)
}
