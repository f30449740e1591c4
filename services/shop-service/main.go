package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/api"
	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/config"
	"github.com/Jake2PointZero/HomesteadingwithTiffany/internal/store"
)

func init() {
	// Initialize logger
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg := config.Load()

	catalog, orders, cleanup, err := buildStores(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to initialize store backend: ", err)
	}
	defer cleanup()

	server := api.NewServer(catalog, orders)
	router := server.Routes(cfg.StaticDir)

	log.WithFields(log.Fields{
		"backend": cfg.Backend,
		"port":    cfg.ServerPort,
	}).Info("Shop service starting")

	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

// buildStores constructs the persistence backend named by the config.
// Only one backend is ever active per deployment.
func buildStores(ctx context.Context, cfg *config.Config) (store.Catalog, store.Orders, func(), error) {
	switch cfg.Backend {
	case "mongo":
		ms, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB, api.ServiceName)
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup := func() {
			if err := ms.Close(context.Background()); err != nil {
				log.Error("Failed to disconnect from document store: ", err)
			}
		}
		return ms, ms, cleanup, nil

	case "sqlite":
		ss, err := store.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return ss, ss, func() { ss.Close() }, nil

	case "file":
		// The flat file only ever held orders; the catalog stays in
		// the embedded database next to it.
		ss, err := store.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return ss, store.NewFileOrders(cfg.OrdersFile), func() { ss.Close() }, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
