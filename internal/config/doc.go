// Package config manages the persisted dialctl settings file.
//
// Settings live in a YAML file in the platform config directory
// (~/.config/dialctl/config.yaml on Linux) and select the engine base URL
// and the console's status poll interval. The engine URL can be overridden
// per invocation with the --engine flag or the DIALCTL_ENGINE_URL
// environment variable; ResolveEngineURL applies that precedence.
package config
