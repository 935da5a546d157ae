package main

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/creditguard/ledger-server/api"
	"github.com/creditguard/ledger-server/internal/config"
	"github.com/creditguard/ledger-server/internal/logging"
	"github.com/creditguard/ledger-server/internal/operator"
	"github.com/creditguard/ledger-server/internal/reconcile"
	"github.com/creditguard/ledger-server/internal/service"
	"github.com/creditguard/ledger-server/internal/storage"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("ledger-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage := storage.NewStorage(envConfig)

	opDelegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	opDelegator.Start()
	defer opDelegator.Stop()

	matcher := reconcile.NewMatcher()
	notifier := &service.LogNotifier{Logger: logger}
	svc := service.NewService(dbStorage, matcher, opDelegator, notifier, envConfig)

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:   logger,
			Port:     envConfig.HTTPPort,
			Service:  svc,
			Operator: opDelegator,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
