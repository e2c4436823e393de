// Package contracts describes the CampaignFactory and Campaign contracts.
//
// It embeds the compiled artifacts (contract name, ABI and bytecode object),
// validates call arguments against the ABI at the client boundary, and offers
// typed bindings (Factory, Campaign) that turn method calls into chain
// requests through a Backend.
package contracts
