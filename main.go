package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	auth "Boltcalc/internal/auth"
	batch "Boltcalc/internal/calc/batch"
	boltgroup "Boltcalc/internal/calc/boltgroup"
	capacity "Boltcalc/internal/calc/capacity"
	importer "Boltcalc/internal/calc/importer"
	loads "Boltcalc/internal/calc/loads"
	report "Boltcalc/internal/calc/report"
	config "Boltcalc/internal/config"
	logging "Boltcalc/internal/logging"
	repo "Boltcalc/internal/repo"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// HandleList registers the auth endpoints and the calculation tools.
func HandleList(mux *mux.Router, cfg config.Config, users repo.Repository, log *zap.Logger) {
	authEnv := &auth.Authenv{JWTkey: cfg.TokenKey, Repo: users, Log: log}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	boltgroupH := &boltgroup.Handler{Log: log, Defaults: cfg.Solver}
	batchH := &batch.Handler{Log: log, Workers: cfg.BatchWorkers}
	importH := &importer.Handler{Log: log, Workers: cfg.BatchWorkers}
	reportH := &report.Handler{Log: log}
	loadsH := &loads.Handler{}
	capacityH := &capacity.Handler{}

	secureApi.HandleFunc("/tools/boltgroup/calc", boltgroupH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/boltgroup/batch", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/boltgroup/import", importH.BoltGroup).Methods("POST")
	secureApi.HandleFunc("/tools/boltgroup/template", importH.Template).Methods("GET")
	secureApi.HandleFunc("/tools/boltgroup/report/pdf", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/loads/calc", loadsH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/capacity/calc", capacityH.Calc).Methods("POST")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}
	defer db.Close()

	mux := mux.NewRouter()
	HandleList(mux, cfg, repo.NewPostgresUserDB(db), log)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("starting server", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	wg.Wait()
	log.Info("server stopped")
}
