package config

// Version is the stockline binary version.
// Set at build time via: -ldflags "-X github.com/stockline/stockline/internal/config.Version=<tag>"
var Version = "dev"
