package main

import (
	"log"
	"os"
	"os/exec"
)

// Convenience entry point: `go run .` starts the analysis service from
// cmd/server, forwarding any flags.
func main() {
	args := append([]string{"run", "./cmd/server"}, os.Args[1:]...)
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
