package cmd

import (
	"net"
	"os"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/pkg/auth"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/benedict-erwin/manufacture-online/pkg/utils"
	"github.com/spf13/cobra"
)

// serveListener is the socket overseer hands over; nil outside overseer
var serveListener net.Listener

var rootCmd = &cobra.Command{
	Use:   "manufacture-online",
	Short: "ManufactureOnline storefront API",
	Long:  `ManufactureOnline storefront API: catalogue, orders, token auth and card payments`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}
		cfg := config.Get()

		logger.Init(cfg.App.Timezone, cfg.App.Env, cfg.App.LogLevel)

		if err := utils.InitTimezone(cfg.App.Timezone); err != nil {
			logger.Warn().Err(err).Msg("Timezone initialization failed, continuing with UTC")
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Failed to execute command")
		os.Exit(1)
	}
}

// ExecuteWithListener runs the root command serving HTTP on l
func ExecuteWithListener(l net.Listener) {
	serveListener = l
	Execute()
}

// newTokenService builds the token service from the auth config
func newTokenService(cfg *config.Config) (*auth.TokenService, error) {
	tokens, err := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL,
		auth.WithClaimAllowlist(cfg.Auth.ClaimAllowlist...))
	if err != nil {
		return nil, err
	}
	if !tokens.Restricted() {
		logger.WithScope("auth").Warn().Msg("No claim allow-list configured, /auth signs every posted field")
	}
	return tokens, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(devCmd)
	rootCmd.AddCommand(workerCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(tokenCmd)
}
