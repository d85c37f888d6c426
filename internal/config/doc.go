// Package config resolves the extension's runtime configuration: the Evidence
// project directory Meltano hands over through the environment, and the
// logging settings shared by every command.
package config
