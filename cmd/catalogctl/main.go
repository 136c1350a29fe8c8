// catalogctl tareas administrativas del catálogo: migrar el esquema y cargar medicamentos desde CSV.
//
// Uso:
//
//	catalogctl migrate
//	catalogctl seed-medicines --owner-email ana@example.com --file medicamentos.csv [--latin1]
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Farmacias-api/internal/infrastructure/store"
	"github.com/jhoicas/Farmacias-api/pkg/config"
	"github.com/jhoicas/Farmacias-api/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "catalogctl",
	Short:         "Tareas administrativas del catálogo de farmacias",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("catalogctl")
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica el esquema embebido del driver configurado (DB_DRIVER)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := store.Open(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}
		log.Info().Str("driver", st.Driver).Msg("esquema aplicado")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedMedicinesCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if log != nil {
			log.Error().Err(err).Msg("comando fallido")
		} else {
			os.Stderr.WriteString("catalogctl: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}
