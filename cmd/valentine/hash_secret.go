package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgauth "github.com/BradenHooton/valentine/pkg/auth"
)

var hashSecretCmd = &cobra.Command{
	Use:   "hash-secret <secret>",
	Short: "Print a bcrypt hash for use in VALENTINE_SECRETS",
	Long: `Print the bcrypt hash of a secret word as a VALENTINE_SECRETS line.
The secret is trimmed and lower-cased before hashing, the same way
submitted secrets are.

The hash is single-quoted: env files expand "$" in unquoted and
double-quoted values, which would corrupt it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := pkgauth.HashSecret(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "VALENTINE_SECRETS='%s'\n", hash)
		return nil
	},
}
