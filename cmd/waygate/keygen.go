package main

import (
	"fmt"

	"github.com/sessamekesh/waygate/pkg/sessioncrypto"
	"github.com/spf13/cobra"
)

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate installation keypairs for the server and the client",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := sessioncrypto.GenerateKeySet()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "# Server")
			fmt.Fprintf(out, "WAYGATE_CLIENT_PUBLIC_KEY=%s\n", sessioncrypto.EncodeKey(keys.ClientPublicKey))
			fmt.Fprintf(out, "WAYGATE_SERVER_SECRET_KEY=%s\n", sessioncrypto.EncodeKey(keys.ServerSecretKey))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "# Client")
			fmt.Fprintf(out, "client_secret_key=%s\n", sessioncrypto.EncodeKey(keys.ClientSecretKey))
			fmt.Fprintf(out, "server_public_key=%s\n", sessioncrypto.EncodeKey(keys.ServerPublicKey))
			return nil
		},
	}
}
