// Package web serves the campaign index.
//
// Routes:
//
//	GET /                     HTML list of every deployed campaign, or an
//	                          empty state when there are none
//	GET /campaigns/{address}  HTML summary of one campaign
//	GET /api/campaigns        {"campaigns": ["0x..."]}
//
// Each request performs one read against the factory; nothing is cached.
package web
