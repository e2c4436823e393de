// Package app wires application dependencies for the binaries.
//
// Configuration is read from CROWDFUND_* environment variables into
// Config, NodeConfig and WebConfig. Wire builds the concrete stores, the
// RPC client and the services from a Config; App binds them to a signer
// for one command or server.
package app
