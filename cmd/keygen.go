package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/gym-scheduler/internal/config"
	"github.com/example/gym-scheduler/internal/crypto"
)

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a GYMSCHED_CRED_KEY value (base64)",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := make([]byte, 32)
			if _, err := rand.Read(key); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "export GYMSCHED_CRED_KEY=%s\n", base64.StdEncoding.EncodeToString(key))
			return nil
		},
	}
}

func newEncryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <password>",
		Short: "Encrypt a password with GYMSCHED_CRED_KEY for use as an enc: config value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.SettingsFromEnv()
			if err != nil {
				return err
			}
			if len(settings.CredKey) == 0 {
				return fmt.Errorf("GYMSCHED_CRED_KEY is not set")
			}
			sealer, err := crypto.New(settings.CredKey)
			if err != nil {
				return err
			}
			sealed, err := sealer.Seal(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "enc:%s\n", sealed)
			return nil
		},
	}
}
