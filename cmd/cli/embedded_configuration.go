package cli

import _ "embed"

//go:embed default_config.yaml
var embeddedConfigurationDefaults []byte

// EmbeddedDefaultConfiguration returns a copy of the built-in configuration defaults and their encoding.
// The loader merges them before any configuration file or environment override.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte(nil), embeddedConfigurationDefaults...), configurationTypeConstant
}
