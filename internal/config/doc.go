// Package config loads phrasebook configuration.
//
// Values are layered, later layers winning:
//
//  1. Built-in defaults
//  2. ~/.config/phrasebook/config.toml (or an explicit path)
//  3. A dotenv file, usually .env in the working directory
//  4. PHRASEBOOK_* environment variables
//
// Command-line flags are applied on top by the caller.
//
// Example config.toml:
//
//	base_url = "https://phrases.example.org"
//	timeout = "15s"
//	start_page = "/praises"
//	data_dir = "~/phrases"
//	redis_addr = "localhost:6379"
//
// A missing config file is not an error. Tilde expansion is performed for
// catalog, data_dir and log_file.
package config
