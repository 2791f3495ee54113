package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sessamekesh/waygate/internal/config"
	"github.com/sessamekesh/waygate/pkg/message"
	"github.com/sessamekesh/waygate/pkg/push"
	"github.com/spf13/cobra"
)

func notifyCmd(configPath *string) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Broadcast a notification to every connected player",
		Long:  "Publishes a Notify push through Redis. Every server using the redis store backend delivers it to its players.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" {
				return errors.New("--message is required")
			}
			cfg, err := config.Load(*configPath, nil)
			if err != nil {
				return err
			}

			opts, err := redis.ParseURL(cfg.Redis.URL)
			if err != nil {
				return fmt.Errorf("parse redis url: %w", err)
			}
			client := redis.NewClient(opts)
			defer client.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			err = push.PublishBroadcast(ctx, client, message.NotifyPush{
				Timestamp: uint64(time.Now().Unix()),
				Section1:  message.NotifySection1Variant1{},
				Section2:  message.NotifyMessage{Message: text},
			})
			if err != nil {
				return fmt.Errorf("publish notification: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Notification published")
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "message", "m", "", "Text shown to players")
	return cmd
}
