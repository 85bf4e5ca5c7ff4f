// Package cli constructs the projanitor command-line interface: the Cobra root command, the Viper-backed
// configuration loader with its embedded defaults, and the zap logger shared by subcommands.
package cli
