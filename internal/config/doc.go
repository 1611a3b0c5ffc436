// Package config manages the pkgdex config directory (~/.pkgdex/), the
// Viper-backed config file, and the registry source declarations read from
// sources.yaml.
package config
