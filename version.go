package parley

// Version is overridden at build time via -ldflags "-X github.com/aretw0/parley.Version=...".
var Version = "dev"
