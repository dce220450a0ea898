package main

import (
	// Go Internal Packages
	"os"

	// Local Packages
	app "tx-injector/app"
	config "tx-injector/config"
)

// Publishes schema registry framed protobuf transactions.
func main() {
	os.Exit(app.Run(config.ProtobufVariant, os.Args[1:]))
}
