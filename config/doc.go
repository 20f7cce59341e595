// SPDX-License-Identifier: MIT

// Package config loads the run configuration of chemnetvis.
//
// Values come from three layers, later ones winning: Default(), a TOML file
// and CHEMNET_* environment variables (nested keys joined by underscores,
// e.g. CHEMNET_OUTPUT_FORMAT). Save writes a configuration back as TOML,
// which is how `chemnetvis -dump-config` produces a starter file.
package config
