// Package main is the single-binary entrypoint for NutriQuest.
// One binary covers the CLI and the local API daemon.
package main

import "github.com/nutriquest-app/nutriquest/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
