// Package config manages user settings stored in ~/.hatch/config.yaml and
// HATCH_* environment variables.
package config
