package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/practicekit/internal/client"
)

// version is set via -ldflags at build time.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("practicekit", version)

		url, _ := cmd.Flags().GetString("server")
		if url == "" {
			return nil
		}
		c := client.New(client.Options{BaseURL: url, Timeout: backendTimeout(), Log: log})
		ctx, cancel := context.WithTimeout(cmd.Context(), backendTimeout())
		defer cancel()
		sv, err := c.ServerVersion(ctx)
		if err != nil {
			return fmt.Errorf("query server version: %w", err)
		}
		compat := "compatible"
		if !client.Compatible(version, sv) {
			compat = "incompatible"
		}
		fmt.Printf("server %s (%s)\n", sv, compat)
		return nil
	},
}

func init() {
	versionCmd.Flags().String("server", "", "Also report the version of the server at this URL")
}
