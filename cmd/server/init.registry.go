package main

import (
	"github.com/maddygoround/hapi-go-mongo/config"
	ticketmodels "github.com/maddygoround/hapi-go-mongo/internal/api/ticket/models"
	"github.com/maddygoround/hapi-go-mongo/internal/logger"
	"github.com/maddygoround/hapi-go-mongo/internal/registry"

	"go.mongodb.org/mongo-driver/mongo"
)

// collectionNames là các collection service sử dụng
var collectionNames = []string{
	ticketmodels.TicketCollection,
}

// InitCollections tạo registry và đăng ký các collection MongoDB theo tên
func InitCollections(client *mongo.Client, cfg *config.Configuration) (*registry.Registry[*mongo.Collection], error) {
	log := logger.GetAppLogger()
	db := client.Database(cfg.MongoDB_DBName)
	collections := registry.NewRegistry[*mongo.Collection]()

	for _, name := range collectionNames {
		registered, err := collections.Register(name, db.Collection(name))
		if err != nil {
			log.Errorf("Failed to register collection %s: %v", name, err)
			return nil, err
		}
		if registered {
			log.Infof("Collection %s registered successfully", name)
		} else {
			log.Warnf("Collection %s already registered", name)
		}
	}

	return collections, nil
}
