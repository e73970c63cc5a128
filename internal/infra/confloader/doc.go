// Package confloader loads layered configuration with koanf.
//
// Sources are merged in order, later sources overriding earlier ones:
//
//  1. Defaults (WithDefaults)
//  2. YAML configuration file (WithConfigFile)
//  3. Environment variables (LLMOPS_SECTION_KEY)
//  4. Explicit overrides such as command-line flags (WithOverrides)
//
// The result is unmarshaled into a struct using koanf tags.
package confloader
