package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/emerald/internal/config"
	"go.uber.org/zap"
)

// Options replaces the process-level collaborators of the commands.
type Options struct {
	LoadConfig       func() (*config.Config, error)
	NewLogger        func(*config.Config) (*zap.Logger, error)
	OpenRuntime      RuntimeOpener
	LookupEnv        func(string) (string, bool)
	PromptPassphrase func(label string) (string, error)
	Now              func() time.Time
}

func (options Options) withDefaults() Options {
	if options.LoadConfig == nil {
		options.LoadConfig = config.Load
	}
	if options.NewLogger == nil {
		options.NewLogger = NewLogger
	}
	if options.OpenRuntime == nil {
		options.OpenRuntime = OpenRuntime
	}
	if options.LookupEnv == nil {
		options.LookupEnv = os.LookupEnv
	}
	if options.PromptPassphrase == nil {
		options.PromptPassphrase = promptPassphrase
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return options
}

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

type cliState struct {
	options Options
	envFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func (state *cliState) init() error {
	if state.cfg != nil {
		return nil
	}
	if state.envFile != "" {
		if err := godotenv.Overload(state.envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}
	cfg, err := state.options.LoadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger, err := state.options.NewLogger(cfg)
	if err != nil {
		return err
	}
	state.cfg = cfg
	state.logger = logger
	return nil
}

// openRuntime must run after init.
func (state *cliState) openRuntime() (*Runtime, error) {
	return state.options.OpenRuntime(state.cfg, state.logger)
}

// NewRootCommand assembles the emerald command tree.
func NewRootCommand(options Options) *cobra.Command {
	state := &cliState{options: options.withDefaults()}

	root := &cobra.Command{
		Use:   "emerald",
		Short: "Emerald - private menstrual cycle tracker",
		Long: `Emerald keeps a period log, symptoms and mood notes in a local
key-value store and serves cycle predictions over a JSON API.

Health data is obfuscated at rest with EMERALD_ENCRYPTION_KEY. Obfuscation
hides data from casual inspection only; use "backup export" for a real
encrypted copy.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := state.init(); err != nil {
				return err
			}
			info := commandContext{
				correlationID: uuid.New(),
				startedAt:     state.options.Now(),
			}
			cmd.SetContext(context.WithValue(cmd.Context(), commandContextKey{}, info))
			state.logger.Debug("command start",
				zap.String("command", cmd.CommandPath()),
				zap.String("correlation_id", info.correlationID.String()),
			)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if state.logger == nil {
				return
			}
			info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
			if !ok {
				return
			}
			state.logger.Debug("command end",
				zap.String("command", cmd.CommandPath()),
				zap.String("correlation_id", info.correlationID.String()),
				zap.Int64("duration_ms", state.options.Now().Sub(info.startedAt).Milliseconds()),
			)
			_ = state.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&state.envFile, "env-file", "", "load this env file over the process environment")

	root.AddCommand(
		newServeCommand(state),
		newKeygenCommand(state),
		newDumpCommand(state),
		newClearCommand(state),
		newBackupCommand(state),
	)
	return root
}

// Execute runs the command tree against the process environment.
func Execute() {
	if err := NewRootCommand(Options{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "emerald:", err)
		os.Exit(1)
	}
}
