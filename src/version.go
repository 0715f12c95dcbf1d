package main

// Version information, injected at build time via ldflags:
// go build -ldflags="-X main.Version=1.2.3 -X main.BuildDate=2026-01-01"
var (
	Version   = "dev"
	BuildDate = "unknown"
)
