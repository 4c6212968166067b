// Package config loads and validates the engine's TOML configuration.
//
// Load resolves the config file (explicit path, then
// ~/.config/discern/config.toml, then ./discern.toml), applies repository
// defaults for anything unset, pulls API keys from the environment
// (ACOUSTID_API_KEY, TMDB_API_KEY) when the file omits them, and validates
// the result. Catalog credentials are optional: strategies that lack them
// are skipped at runtime rather than failing configuration.
package config
