// Package file provides the TOML-backed ConfigStore.
//
// Values are addressed with dot-notation keys ("googledrive.cache_dir") and
// written back as nested TOML tables.
package file
