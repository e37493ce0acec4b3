package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/jhoicas/estoque/internal/application/analytics"
	"github.com/jhoicas/estoque/internal/application/inventory"
	infrapdf "github.com/jhoicas/estoque/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque/internal/infrastructure/storage"
	"github.com/jhoicas/estoque/internal/interfaces/cli"
	httpRouter "github.com/jhoicas/estoque/internal/interfaces/http"
	"github.com/jhoicas/estoque/pkg/config"
	"github.com/jhoicas/estoque/pkg/logger"
)

var (
	storeFlag = flag.String("store", "", "Ubicación del store (sobrescribe STORE_LOCATION).")
	plainFlag = flag.Bool("plain", false, "Salida markdown sin estilos de terminal.")
)

func main() {
	os.Exit(int(run()))
}

// run arma las dependencias y ejecuta el subcomando; los defers corren antes de os.Exit.
func run() subcommands.ExitStatus {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if *storeFlag != "" {
		cfg.Store.Location = *storeFlag
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.Store.Location)
	if err != nil {
		log.Error().Err(err).Str("store", cfg.Store.Location).Msg("abrir store")
		return subcommands.ExitFailure
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar store")
		}
	}()
	log.Debug().Str("driver", string(store.Driver)).Str("store", cfg.Store.Location).Msg("store abierto")

	ledger := inventory.NewRegisterMovementUseCase(store.Tx, store.Items, store.Movements, inventory.WithLogger(log))
	itemUC := inventory.NewItemUseCase(store.Tx, store.Items, ledger, inventory.WithLogger(log))
	valuationUC := inventory.NewValuationUseCase(store.Items)
	reportUC := analytics.NewReportUseCase(store.Items, store.Movements, cfg.Report.LowStockThreshold)
	pdfUC := analytics.NewPDFUseCase(reportUC, store.Items, infrapdf.NewMarotoReportGenerator(cfg.App.Name))

	deps := httpRouter.RouterDeps{
		Items:     itemUC,
		Ledger:    ledger,
		Valuation: valuationUC,
		Reports:   reportUC,
		PDF:       pdfUC,
	}

	app := &cli.App{
		Items:     itemUC,
		Ledger:    ledger,
		Valuation: valuationUC,
		Reports:   reportUC,
		PDF:       pdfUC,
		Plain:     *plainFlag,
		Log:       log,
		Serve: func(ctx context.Context) error {
			return serve(ctx, cfg, log, deps)
		},
	}
	cli.Register(commander, app)

	args := flag.Args()
	if len(args) == 0 {
		// Sin subcomando: menú interactivo.
		if err := flag.CommandLine.Parse([]string{"menu"}); err != nil {
			log.Error().Err(err).Msg("argumentos")
			return subcommands.ExitUsageError
		}
	}
	return commander.Execute(ctx)
}

// serve levanta la API HTTP y la apaga ordenadamente cuando ctx se cancela.
func serve(ctx context.Context, cfg *config.Config, log *logger.Logger, deps httpRouter.RouterDeps) error {
	app := httpRouter.NewServer(httpRouter.ServerConfig{
		AppName:     cfg.App.Name,
		SwaggerFile: "./docs/swagger.json",
		Log:         log,
	}, deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		errCh <- app.Listen(cfg.HTTP.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
		return err
	}
	log.Info().Msg("servidor detenido")
	return nil
}
