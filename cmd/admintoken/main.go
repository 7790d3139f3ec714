package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/tariff-sync/internal/config"
	"github.com/vfg2006/tariff-sync/internal/domain"
	"github.com/vfg2006/tariff-sync/internal/usecases/authenticating"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:          "admintoken",
		Short:        "Gera um JWT de administrador para a API de sincronização de tarifas",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logrus.SetOutput(cmd.ErrOrStderr())

			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}

			token, err := authenticating.NewService(cfg.Auth).GenerateToken(subject, domain.RoleAdmin, ttl)
			if err != nil {
				return fmt.Errorf("erro ao gerar token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "admin", "identificação do operador gravada no token")
	cmd.Flags().DurationVarP(&ttl, "ttl", "t", 24*time.Hour, "validade do token")

	return cmd
}
