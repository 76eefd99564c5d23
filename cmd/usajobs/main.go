package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"usajobs-list/internal/common"
	"usajobs-list/internal/logger"
	"usajobs-list/internal/secrets"
)

func main() {
	log := logger.New("usajobs")

	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		log:         log,
		lookup:      os.LookupEnv,
		keyFallback: secrets.GetAuthKey,
	}
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		log.Error("usajobs failed", "code", common.CodeOf(err), "error", err)
		stop()
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if common.IsCode(err, common.CodeConfig) {
		return 2
	}
	return 1
}
