// Package config loads the thermbat TOML configuration.
//
// Lookup order is an explicit --config path, then
// ~/.config/thermbat/config.toml, then ./thermbat.toml. A missing file yields
// the defaults; values are normalized (paths expanded, enums lower-cased) and
// validated before Load returns.
package config
