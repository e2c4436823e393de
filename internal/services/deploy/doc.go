// Package deploy publishes the CampaignFactory and records where it went.
package deploy
