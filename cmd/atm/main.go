package main

import (
	"AEBank/internal/adapters/eventbus"
	"AEBank/internal/adapters/terminal"
	"AEBank/internal/adapters/textfile"
	"AEBank/internal/atm"
	_ "AEBank/internal/atm/handlers"
	"AEBank/internal/core/domain"
	"AEBank/internal/core/registry"
	"AEBank/internal/core/session"
	"AEBank/internal/shared/config"
	"AEBank/internal/shared/logger"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
)

func main() {
	// 1. Parse flags and load configuration
	fs := pflag.NewFlagSet("atm", pflag.ExitOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Printf("FATAL: Failed to parse flags: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	baseLogger, closer, err := logger.New(logger.Options{
		DevMode: cfg.IsDev(),
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
	})
	if err != nil {
		fmt.Printf("FATAL: Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	baseLogger.Info().
		Str("app_env", cfg.AppEnv).
		Str("accounts_file", cfg.AccountsFile).
		Int("default_capacity", cfg.DefaultCapacity).
		Msg("Configuration loaded")

	// 3. Load the accounts file
	ctx := context.Background()
	store := textfile.NewFileStore(cfg.AccountsFile, &baseLogger)
	reg, err := registry.Load(ctx, store, cfg.DefaultCapacity, &baseLogger)
	var formatErr *domain.FormatError
	switch {
	case err == nil:
	case errors.As(err, &formatErr):
		// Keep the accounts read before the bad line. Saving rewrites the file
		// without the unparsed lines, so keep a copy of the original first.
		baseLogger.Warn().Err(err).Int("line", formatErr.Line).Msg("Accounts file is malformed, continuing with partial data")
		fmt.Println("The accounts file is invalid; some accounts could not be loaded.")
		backup, bakErr := textfile.Backup(cfg.AccountsFile)
		if bakErr != nil {
			baseLogger.Fatal().Err(bakErr).Msg("Failed to back up malformed accounts file")
		}
		baseLogger.Warn().Str("backup", backup).Msg("Malformed accounts file backed up")
		fmt.Printf("The original file was copied to %s; it will be overwritten on exit.\n", backup)
	default:
		baseLogger.Fatal().Err(err).Msg("Failed to load accounts file")
	}

	// 4. Wire the engine and its audit trail
	bus := eventbus.NewInMemoryEventBus(&baseLogger)
	eventbus.NewAuditSubscriber(bus, &baseLogger)
	engine := session.NewEngine(reg, bus, &baseLogger)

	// 5. Save on interrupt
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		baseLogger.Info().Str("signal", sig.String()).Msg("Interrupted, saving accounts")
		code := 0
		if err := engine.Save(ctx); err != nil {
			baseLogger.Error().Err(err).Msg("Failed to save accounts on interrupt")
			code = 1
		}
		closer.Close()
		os.Exit(code)
	}()

	// 6. Run the terminal
	prompter := terminal.NewPrompter(os.Stdin, os.Stdout, &baseLogger)
	machine := atm.NewMachine(cfg, engine, prompter, &baseLogger)
	baseLogger.Info().Int("capacity", reg.Capacity()).Int("accounts", reg.Len()).Msg("ATM started")

	runErr := machine.Run(ctx)
	if runErr != nil {
		baseLogger.Error().Err(runErr).Msg("ATM stopped with an error")
	}

	// 7. Persist on the way out
	if err := engine.Save(ctx); err != nil {
		baseLogger.Error().Err(err).Msg("Failed to save accounts")
		fmt.Println("Could not save the accounts file.")
		closer.Close()
		os.Exit(1)
	}
	fmt.Println("Goodbye!")
	if runErr != nil {
		closer.Close()
		os.Exit(1)
	}
}
