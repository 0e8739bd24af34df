// UniCatalog API
//
// REST service for managing an academic catalog: courses with prerequisite
// chains, instructors, students, and enrollments.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mvillegas/unicatalog/internal/server"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	srv, err := server.NewServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize server: %v\n", err)
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
		os.Exit(1)
	}
}
