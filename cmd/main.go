package main

import (
	"go.uber.org/fx"

	"docregistry/internal/config"
	deliveryhttp "docregistry/internal/delivery/http"
	"docregistry/internal/editor"
	"docregistry/internal/infrastructure/database"
	"docregistry/internal/infrastructure/filestore"
	"docregistry/internal/infrastructure/logger"
	"docregistry/internal/infrastructure/redis"
	"docregistry/internal/infrastructure/repository"
	"docregistry/internal/infrastructure/script"
	"docregistry/internal/server"
	"docregistry/internal/usecase"
)

func main() {
	fx.New(
		// Configuration
		config.Module,

		// Infrastructure
		logger.Module,
		database.Module,
		redis.Module,
		filestore.Module,
		script.Module,
		repository.Module,

		// Business Logic
		editor.Module,
		usecase.Module,

		// Delivery
		deliveryhttp.Module,

		// Server
		server.Module,
	).Run()
}
