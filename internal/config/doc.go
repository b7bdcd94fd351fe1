// Package config loads vidsite configuration.
//
// Precedence is ENV > .env file > YAML file > defaults. Every binary shares
// the same loader so the server and the offline tools agree on the site URL,
// the catalog location and the IndexNow settings.
package config
