package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sessamekesh/waygate/internal/obs"
	"github.com/sessamekesh/waygate/pkg/message"
	"github.com/sessamekesh/waygate/pkg/probe"
	"github.com/sessamekesh/waygate/pkg/sessioncrypto"
	"github.com/spf13/cobra"
)

func probeCmd() *cobra.Command {
	var (
		url             string
		externalID      string
		ticket          string
		clientSecretKey string
		serverPublicKey string
		timeout         time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Connect to a server as a game client and check it answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := sessioncrypto.ParseClientKeys(clientSecretKey, serverPublicKey)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			out := cmd.OutOrStdout()
			start := time.Now()

			client, err := probe.Dial(ctx, probe.Params{
				URL:           url,
				ExternalID:    externalID,
				SessionTicket: ticket,
				ClientVersion: "waygate-probe/" + version,
				Keys:          keys,
				Logger:        obs.NewLogger(false),
			})
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Handshake(ctx); err != nil {
				return fmt.Errorf("handshake: %w", err)
			}
			fmt.Fprintf(out, "handshake      ok (%s)\n", time.Since(start).Round(time.Millisecond))

			created, err := client.CreateSession(ctx, 0)
			if err != nil {
				return fmt.Errorf("create session: %w", err)
			}
			fmt.Fprintf(out, "session        ok (player %d, session %d)\n", created.PlayerID, created.SessionData.Identifier.ObjectID)

			if err := client.Heartbeat(ctx); err != nil {
				return fmt.Errorf("heartbeat: %w", err)
			}
			fmt.Fprintln(out, "heartbeat      ok")

			callStart := time.Now()
			if _, err := client.Call(ctx, message.CheckAliveRequest{}); err != nil {
				return fmt.Errorf("check alive: %w", err)
			}
			fmt.Fprintf(out, "check alive    ok (%s)\n", time.Since(callStart).Round(time.Millisecond))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&url, "url", "ws://127.0.0.1:10901/", "Server WebSocket URL")
	flags.StringVar(&externalID, "steam-id", "", "Steam id sent in the x-steam-id header")
	flags.StringVar(&ticket, "ticket", "probe", "Session ticket sent in the x-steam-session-ticket header")
	flags.StringVar(&clientSecretKey, "client-secret-key", "", "Base64 client secret key from keygen")
	flags.StringVar(&serverPublicKey, "server-public-key", "", "Base64 server public key from keygen")
	flags.DurationVar(&timeout, "timeout", 15*time.Second, "Overall deadline")
	_ = cmd.MarkFlagRequired("steam-id")

	return cmd
}
