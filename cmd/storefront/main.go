// Command storefront runs the ordering backend: catalog endpoint,
// order and special-request writers, confirmation mail and the admin
// API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/primecut/storefront/config"
	"github.com/primecut/storefront/internal/app"
	"github.com/primecut/storefront/internal/mailer"
	"github.com/primecut/storefront/internal/webapi"
)

var (
	configFile = flag.String("c", "storefront.yml", "configuration file")
	initDB     = flag.Bool("initdb", false, "drop and recreate all tables, then exit")
	showVer    = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("storefront", version)
		return
	}

	cfg := config.LoadConfig(*configFile)
	cfg.InitDirs()

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDB {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	mail, err := mailer.New(cfg.Smtp, cfg.System.BusinessName)
	if err != nil {
		zap.L().Fatal("failed to start mailer", zap.Error(err))
	}
	defer mail.Close()

	server := webapi.NewWebServer(application, mail)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("server exited with error", zap.Error(err))
	}
}
