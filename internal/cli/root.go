package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/martijn/clientbook/internal/core/repository"
	"github.com/martijn/clientbook/internal/infrastructure/sqlstore"
	"github.com/martijn/clientbook/internal/logger"
	"github.com/martijn/clientbook/pkg/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	log     zerolog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "clientbook",
	Short: "Clientbook - client records over SQLite, MySQL or PostgreSQL",
	Long: `Clientbook keeps a table of client records (name, address, phone number)
in a relational database.

It provides:
- Create, list, get, search, update and delete from the command line
- The same operations as a JSON REST API
- SQLite, MySQL and PostgreSQL backends`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log, err = logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+config.DefaultConfigPath+")")
}

// initServices opens the configured store
func initServices(ctx context.Context) (*Services, error) {
	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBDSN,
		Table:        cfg.TableName,
		CreateSchema: cfg.CreateSchema,
		Logger:       log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log.Debug().
		Str("driver", cfg.DBDriver).
		Str("table", db.Table()).
		Msg("database ready")

	return &Services{
		DB:         db,
		ClientRepo: sqlstore.NewClientRepository(db),
	}, nil
}

// Services holds all initialized services
type Services struct {
	DB         *sqlstore.DB
	ClientRepo repository.ClientRepository
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close database")
		}
	}
}
