package main

import (
	"log"
	"net/http"

	"github.com/deathrjj/nda-dashboard-tui/backend"
	"github.com/deathrjj/nda-dashboard-tui/config"
	"github.com/deathrjj/nda-dashboard-tui/models"
)

func main() {
	cfg, err := config.LoadBackend()
	if err != nil {
		log.Fatal(err)
	}

	peers := make([]models.Identity, 0, len(cfg.Peers))
	for _, p := range cfg.Peers {
		peers = append(peers, models.Identity(p))
	}
	store := backend.NewStore(models.Identity(cfg.Node), peers)
	if cfg.Seed {
		if err := store.Seed(); err != nil {
			log.Fatalf("seed store: %v", err)
		}
	}

	log.Printf("NDA demo backend for %s listening on %s%s", cfg.Node, cfg.Addr, cfg.BasePath)
	if err := http.ListenAndServe(cfg.Addr, backend.NewRouter(store, cfg.BasePath)); err != nil {
		log.Fatal(err)
	}
}
