package main

import (
	"log"

	"github.com/google/gops/agent"

	"github.com/reviewkit/reviewkit/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Start gops agent for runtime debugging
	if err := agent.Listen(agent.Options{
		ShutdownCleanup: true,
	}); err != nil {
		log.Printf("Failed to start gops agent: %v", err)
	}
	defer agent.Close()

	cmd.Version = version
	cmd.Commit = commit
	cmd.Date = date

	cmd.Execute()
}
