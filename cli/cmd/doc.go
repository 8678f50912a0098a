// Package cmd implements the appconf subcommands.
//
// Commands read the configuration named by the global --source flag through
// the [Source] stored in their context by [WithSource].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the settings file.
	ConfigIdentifier = "config"

	// ConfigSection names the section of the settings file holding flag
	// values.
	ConfigSection = "config"
)
