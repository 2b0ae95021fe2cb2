// Command reportsqld starts the reportsql HTTP server: it loads a service
// config and a catalog, opens the configured warehouse dialect, and serves
// httpapi.Server's routes — the daemon counterpart to reportsqlc's one-shot
// compile, mirroring how the teacher splits a one-shot CLI from its longer-
// lived database.Database collaborators.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/sqldef/reportsql/catalog"
	"github.com/sqldef/reportsql/config"
	"github.com/sqldef/reportsql/httpapi"
	"github.com/sqldef/reportsql/internal/logging"
	"github.com/sqldef/reportsql/store"
)

type options struct {
	Config string `short:"f" long:"config" description:"Path to the service config YAML file" required:"true"`
}

func main() {
	logging.Init()

	var opts options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Fatal(err)
	}

	cat, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		log.Fatal(err)
	}

	server := &httpapi.Server{Catalog: cat}

	if cfg.DSN != "" {
		db, err := store.Open(store.Dialect(cfg.Dialect), cfg.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		server.Engine = store.NewEngine(db, store.Dialect(cfg.Dialect))

		repo := store.NewRepository(db)
		if err := repo.EnsureSchema(context.Background()); err != nil {
			log.Fatal(err)
		}
		server.Repository = repo
	} else {
		slog.Warn("no dsn configured; /reports/run, /reports/save and /reports/run-by-name will fail, only /reports/compile is usable")
	}

	slog.Info("reportsqld listening", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, server.Routes()); err != nil {
		log.Fatal(err)
	}
}
