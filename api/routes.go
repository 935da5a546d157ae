package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/creditguard/ledger-server/internal/handlers/v1/message"
	"github.com/creditguard/ledger-server/internal/handlers/v1/payment"
	"github.com/creditguard/ledger-server/internal/handlers/v1/status"
	"github.com/creditguard/ledger-server/internal/handlers/v1/transaction"
	"github.com/creditguard/ledger-server/internal/logging"
	"github.com/creditguard/ledger-server/internal/operator"
	"github.com/creditguard/ledger-server/internal/service"
)

// requestLogger attaches a LogData collector to each request and flushes it
// once the handler returns, so timings and fields added downstream end up on
// one log line per request.
func requestLogger(logger *logrus.Logger) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := logging.NewLogData(logger)

		endTimer := logData.AddTiming("duration")
		next(huma.WithValue(ctx, logging.LogDataKey{}, logData))
		endTimer()

		operationID := ctx.Operation().OperationID
		if ctx.Status() >= http.StatusInternalServerError {
			logData.Log().Errorf("Handler.%v.Error", operationID)
			return
		}
		logData.Log().Infof("Handler.%v.Complete", operationID)
	}
}

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Operator *operator.OperatorDelegator
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	humaAPI := humago.New(mux, huma.DefaultConfig("ledger-server", "1.0.0"))
	humaAPI.UseMiddleware(requestLogger(r.Logger))

	message.NewProcessMessageHandler(r.Service.Ingest).Register(humaAPI)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewSummaryHandler(r.Service.Transaction).Register(humaAPI)
	transaction.NewMarkPaidHandler(r.Service.Transaction, r.Operator).Register(humaAPI)
	transaction.NewMarkAllPaidHandler(r.Operator).Register(humaAPI)
	payment.NewInitiatePaymentHandler(r.Service.Payment).Register(humaAPI)
	payment.NewPaymentStatusHandler(r.Service.Payment).Register(humaAPI)

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           mux,
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
