// Package config loads counter definitions from YAML files and server settings from the
// environment, decoding loosely typed maps into domain options.
package config
