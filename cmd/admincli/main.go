package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	mongo "portfolio-pulse/internal/clients/mongo"
	"portfolio-pulse/internal/config"
	"portfolio-pulse/internal/logger"
	"portfolio-pulse/internal/services/auth"

	"github.com/spf13/cobra"
)

// rootCmd drops into the interactive menu when invoked bare,
// matching how operators provision the very first account.
var rootCmd = &cobra.Command{
	Use:   "admincli",
	Short: "Manage PortfolioPulse admin accounts",
	Long: `admincli manages the admin accounts that can sign in to the
PortfolioPulse dashboard. It talks straight to MongoDB using the same
configuration as the server (MONGO_URI, MONGO_DB_NAME, BCRYPT_COST).

Run without arguments for an interactive menu.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), runMenu)
	},
}

var createCmd = &cobra.Command{
	Use:   "create [email]",
	Short: "Create an admin account",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *auth.Service) error {
			email := ""
			if len(args) == 1 {
				email = args[0]
			}
			return runCreate(ctx, svc, email)
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List admin accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), runList)
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd [email]",
	Short: "Change an admin account password",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *auth.Service) error {
			email := ""
			if len(args) == 1 {
				email = args[0]
			}
			return runPasswd(ctx, svc, email)
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [email]",
	Short: "Delete an admin account",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *auth.Service) error {
			email := ""
			if len(args) == 1 {
				email = args[0]
			}
			return runDelete(ctx, svc, email)
		})
	},
}

// withService loads config, connects to Mongo and hands an auth service to fn.
// The connection is closed before returning, whatever fn does.
func withService(ctx context.Context, fn func(context.Context, *auth.Service) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logg := logger.Init(cfg)

	if _, _, err := mongo.Init(ctx, cfg, logg); err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongo.Shutdown(shutdownCtx); err != nil && !errors.Is(err, mongo.ErrNotInitialized) {
			logg.Error("mongo shutdown", "err", err)
		}
	}()

	repo, err := mongo.NewUsersRepo(ctx, mongo.DB())
	if err != nil {
		return fmt.Errorf("users repo: %w", err)
	}

	return fn(ctx, auth.NewService(repo, cfg, logg))
}

func main() {
	rootCmd.AddCommand(createCmd, listCmd, passwdCmd, deleteCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
