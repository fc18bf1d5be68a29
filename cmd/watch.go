/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ProgrammerShajib/fullstack/config"
	"github.com/ProgrammerShajib/fullstack/internal/logger"
	"github.com/ProgrammerShajib/fullstack/internal/mq"
	"github.com/ProgrammerShajib/fullstack/internal/services"
)

// watchCmd tails the user change events published by the server.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Log user change events from the configured broker",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		log := logger.Configure(cfg.Logging)

		if cfg.MQ.Backend == config.MQBackendNone {
			return errors.New("MQ_BACKEND is not set")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		queue, err := mq.Open(ctx, cfg.MQ)
		if err != nil {
			return err
		}
		defer queue.Close()

		log.Info().Str("backend", cfg.MQ.Backend).Str("channel", cfg.MQ.Channel).Msg("watching user events")
		err = queue.Subscribe(ctx, cfg.MQ.Channel, func(ctx context.Context, msg mq.Message) error {
			event, err := services.DecodeUserEvent(msg)
			if err != nil {
				log.Warn().Err(err).Str("message_id", msg.ID).Msg("discarding undecodable event")
				return fmt.Errorf("%w: %v", mq.ErrDrop, err)
			}
			log.Info().
				Str("event", string(event.Type)).
				Str("user_id", event.User.ID.Hex()).
				Str("email", event.User.Email).
				Time("occurred_at", event.OccurredAt).
				Msg("user event")
			return nil
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
