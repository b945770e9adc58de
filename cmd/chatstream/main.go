// Command chatstream runs the HTTP Surface: it wires configuration,
// telemetry, the Mongo-backed stores, and the gin router together, then
// serves until SIGINT/SIGTERM, shutting down gracefully. Entrypoint and
// signal-handling idiom grounded on
// goadesign-goa-ai/example/cmd/assistant/{main,http}.go's
// errc-channel + sync.WaitGroup + context-cancellation shutdown, adapted
// from goa's generated endpoint wiring to a single gin.Engine.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	openai "github.com/sashabaranov/go-openai"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"goa.design/clue/log"

	"chatcore.dev/chatstream/config"
	"chatcore.dev/chatstream/httpapi"
	"chatcore.dev/chatstream/mcpconfig"
	"chatcore.dev/chatstream/skill"
	"chatcore.dev/chatstream/skill/catalog"
	"chatcore.dev/chatstream/store/mongo"
	"chatcore.dev/chatstream/telemetry"
)

func main() {
	format := log.FormatJSON
	if log.IsTerminal() {
		format = log.FormatTerminal
	}
	ctx := log.Context(context.Background(), log.WithFormat(format))
	logger := telemetry.NewClueLogger()
	tracer := telemetry.NewClueTracer()
	metrics := telemetry.NewClueMetrics()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(ctx, err)
	}

	mongoClient, err := mongodriver.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(ctx, fmt.Errorf("connecting to mongo: %w", err))
	}

	mcpStore, skillStore, err := mongo.NewStores(ctx, mongo.Options{
		Client:   mongoClient,
		Database: "chatstream",
	})
	if err != nil {
		log.Fatal(ctx, fmt.Errorf("initializing stores: %w", err))
	}

	openaiClient := openai.NewClient(cfg.OpenAIAPIKey)

	ctrl := httpapi.Controller{
		OpenAI:      openaiClient,
		MCPs:        mcpconfig.Service{Repo: mcpStore},
		Skills:      skill.Service{Repo: skillStore, Catalog: catalog.New()},
		AuthSecret:  cfg.SecretKey,
		AllowedCORS: cfg.CORSOrigins,
		Logger:      logger,
		Tracer:      tracer,
		Metrics:     metrics,
		Pinger: func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		},
	}
	// Controller.Store's type is unexported, so it is built with
	// httpapi.NewStore from the same stores.
	ctrl.Store = httpapi.NewStore(ctrl.Skills, mcpStore)

	router := httpapi.NewRouter(ctrl)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 60 * time.Second}

	errc := make(chan error, 1)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errc <- fmt.Errorf("%s", <-c)
	}()

	var wg sync.WaitGroup
	runCtx, cancel := context.WithCancel(ctx)

	wg.Add(1)
	go func() {
		defer wg.Done()

		go func() {
			log.Printf(runCtx, "HTTP server listening on %q", addr)
			errc <- srv.ListenAndServe()
		}()

		<-runCtx.Done()
		log.Printf(runCtx, "shutting down HTTP server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf(runCtx, "failed to shutdown: %v", err)
		}
	}()

	log.Printf(ctx, "exiting (%v)", <-errc)
	cancel()
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = mongoClient.Disconnect(shutdownCtx)

	log.Printf(ctx, "exited")
}
