package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-insight/internal/api"
	"resume-insight/internal/backend"
	"resume-insight/internal/config"
	"resume-insight/internal/enrich"
	"resume-insight/internal/ingest"
	"resume-insight/internal/notify"
	"resume-insight/internal/session"
	"resume-insight/pkg/httpclient"
)

// @title Resume Insight Gateway API
// @version 1.0
// @description Resume analysis dashboard gateway: upload resumes, track history, and enrich candidates with LeetCode/CodeChef/GitHub statistics
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api

func main() {
	cfg := config.Load()

	log.Println("Analysis backend:", cfg.BackendURL)

	// No transport-level timeout: platform lookups must always resolve, even
	// slowly. The upload bound is applied inside the backend client.
	hc := httpclient.New(0)
	bc := backend.NewClient(cfg.BackendURL, cfg.GitHubToken, hc, cfg.BackendTimeout())

	store := session.NewStore()
	messenger := notify.NewMessenger()
	orchestrator := enrich.NewOrchestrator(bc, store, messenger, cfg.MessageTTL())
	pipeline := ingest.NewPipeline(bc, store, messenger, orchestrator, cfg.MessageTTL())

	apiSrv := api.NewAPI(store, messenger, pipeline)
	router := api.NewRouter(apiSrv)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second, // file uploads
		WriteTimeout: 5 * time.Minute,  // upload + backend parsing can be slow
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Println("server shutdown:", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("API server listening on :%s\n", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	<-idleConnsClosed
}
