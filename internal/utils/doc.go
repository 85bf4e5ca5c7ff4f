// Package utils holds the CLI plumbing shared by every command: configuration loading through Viper,
// zap logger construction, command context values and an output writer that flushes after each write.
package utils
