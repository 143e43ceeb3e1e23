// Package config loads the setlist configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/setlist/config.toml
//  3. If the file doesn't exist, use the defaults
//  4. If the file exists but fields are missing or empty, use the defaults
//
// # TOML Format
//
//	api_base_url    = "https://music-band-1.onrender.com"
//	request_timeout = "8s"   # per remote call, before falling back
//	probe_interval  = "30s"  # availability indicator cadence
//	data_dir        = "~/.local/share/setlist"
//	store_backend   = "file" # file, sqlite or memory
//	log_level       = "info"
//	log_file        = "~/.local/share/setlist/setlist.log"
//
// Every field is optional. Tilde expansion is applied to data_dir and
// log_file, and relative paths are made absolute.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, invalid TOML, unparseable or non-positive durations, and an
// unknown store_backend. A missing file is not an error.
package config
