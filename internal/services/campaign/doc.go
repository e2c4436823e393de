// Package campaign is the client integration layer over the deployed
// contracts: the read path behind the index page and the lifecycle calls
// behind the CLI.
//
// Every operation is a single request/response against the provider.
// Contract failures are returned unchanged so callers can match the
// verbatim revert message.
package campaign
