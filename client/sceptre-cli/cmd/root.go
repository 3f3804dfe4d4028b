package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	sessionID string
)

var rootCmd = &cobra.Command{
	Use:   "sceptre-cli",
	Short: "A CLI client to interact with the verification service",
	Long:  `A command-line interface for verifying content, searching for evidence, and chatting over a session's knowledge base.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI: %s", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the verification service")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session", "cli", "session identifier for the knowledge base")
}
