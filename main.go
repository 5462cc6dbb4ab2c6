package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Jayzwillz/backend-movie-app/internal/bootstrap"
	"github.com/Jayzwillz/backend-movie-app/internal/config"
	"github.com/Jayzwillz/backend-movie-app/internal/version"
)

func main() {
	// Define flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Usage = printUsage
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		version.PrintVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	// Handle subcommands
	switch args[0] {
	case "server":
		runServer()
	case "promote":
		runPromote(args[1:])
	default:
		fmt.Printf("Unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("Usage: %s [OPTIONS] COMMAND\n\n", os.Args[0])
	fmt.Println("Movie discovery backend: accounts, watchlists, reviews, and AI features")
	fmt.Println("\nCommands:")
	fmt.Println("  server             Start the API server")
	fmt.Println("  promote <email>    Grant the admin role to an existing account")
	fmt.Println("\nOptions:")
	fmt.Println("  -v, --version    Show version information")
	fmt.Println("  -h, --help       Show this help message")
}

func runServer() {
	cfg := config.Load()
	if err := bootstrap.Run(cfg); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func runPromote(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: promote <email>")
		os.Exit(1)
	}

	cfg := config.Load()
	if err := bootstrap.Promote(cfg, args[0]); err != nil {
		log.Fatalf("Promote failed: %v", err)
	}
}
