// Command hash-generator prints bcrypt hashes for seeding user rows by hand.
//
// Usage:
//
//	hash-generator [--cost N] password [password...]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/taskr-api/internal/service/auth"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "hash-generator [password...]",
		Short:        "Generate bcrypt password hashes",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cost, _ := cmd.Flags().GetInt("cost")
			hasher := auth.NewBcryptHasher(cost)

			for _, password := range args {
				hash, err := hasher.Hash(password)
				if err != nil {
					return fmt.Errorf("hashing password: %w", err)
				}
				if _, err := fmt.Fprintf(stdout, "Password: %s\nHash: %s\n\n", password, hash); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.Flags().Int("cost", bcrypt.DefaultCost, "bcrypt cost factor (4-31)")
	return cmd
}
