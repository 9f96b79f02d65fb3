package config

import _ "embed"

// DefaultConfigYAML is the built-in configuration baked into the binary.
// External config files and NATIVUS_* environment variables override it.
//
//go:embed default.yaml
var DefaultConfigYAML []byte
