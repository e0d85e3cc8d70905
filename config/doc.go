// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// The loaded value is immutable: it is constructed once at process start and
// passed into the dispatcher and server, never mutated at runtime.
package config
