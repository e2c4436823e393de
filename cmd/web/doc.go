// Package main serves the campaign pages over HTTP.
//
// Routes
//
//	GET /                      campaign list, or the empty state
//	GET /campaigns/{address}   one campaign's summary
//	GET /api/campaigns         campaign list as JSON
//
// The server reads CROWDFUND_* settings like the CLI, talks to the node at
// CROWDFUND_RPC_URL and finds the factory through CROWDFUND_FACTORY_ADDRESS or
// the deployment recorded by "crowdfund deploy". Pages are read-only, so no
// wallet is unlocked.
package main
