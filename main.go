package main

import (
	"log"
	"net/http"

	"github.com/feruzlabs/laravel-taskMaster/internal/api"
	"github.com/feruzlabs/laravel-taskMaster/internal/config"
	"github.com/feruzlabs/laravel-taskMaster/internal/store"
	"github.com/feruzlabs/laravel-taskMaster/web"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	apiCfg := api.NewAPIConfig(cfg, db)

	taskmaster := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.SetupMux(apiCfg, web.Handler()),
	}

	// start server
	log.Fatal(taskmaster.ListenAndServe())
}
