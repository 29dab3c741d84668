// Package provider wires the application's long-lived components together.
package provider

import (
	"github.com/kitestore-next/internal/bot"
	"github.com/kitestore-next/internal/catalog"
	"github.com/kitestore-next/internal/config"
	"github.com/kitestore-next/internal/photos"
	"github.com/kitestore-next/internal/service"
	"github.com/kitestore-next/internal/wizard"
)

// Container holds the shared component instances.
type Container struct {
	Config *config.Config

	Store          *catalog.Store
	Photos         *photos.Manager
	CatalogService *service.CatalogService

	BotClient  *bot.Client
	Sessions   *wizard.Manager
	Dispatcher *bot.Dispatcher
}

// NewContainer builds the component graph from configuration.
func NewContainer(cfg *config.Config) *Container {
	store := catalog.NewStore(cfg.Catalog.File)
	photoManager := photos.NewManager(cfg.Photos)
	catalogService := service.NewCatalogService(store, photoManager)

	botClient := bot.NewClient(cfg.Bot)
	sessions := wizard.NewManager(store, photoManager, botClient)
	dispatcher := bot.NewDispatcher(botClient, sessions, catalogService, cfg.Bot.AdminChatID, cfg.Bot.WebAppURL)

	return &Container{
		Config:         cfg,
		Store:          store,
		Photos:         photoManager,
		CatalogService: catalogService,
		BotClient:      botClient,
		Sessions:       sessions,
		Dispatcher:     dispatcher,
	}
}
