package main

import (
	// Go Internal Packages
	"os"

	// Local Packages
	app "tx-injector/app"
	config "tx-injector/config"
)

// Publishes pretty-printed JSON transactions.
func main() {
	os.Exit(app.Run(config.JSONVariant, os.Args[1:]))
}
