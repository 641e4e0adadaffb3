package main

import (
	"DocVault/config"
	"DocVault/internal/mq"
	"DocVault/internal/repo"
	"DocVault/internal/service"
	"DocVault/internal/storage"
	"DocVault/router"
	"log"
)

// main initializes services and starts the HTTP server.
func main() {
	config.InitConfig()
	repo.InitMysql()
	repo.InitRedis()
	storage.InitMinio()
	service.UseHookSet(service.DefaultHookSet{})

	// GetPublisher declares the notification topology on first connect.
	if _, err := mq.GetPublisher(); err != nil {
		log.Printf("notification broker unavailable: %v", err)
	}

	router := router.InitRouter()

	router.Run(":8000")
}
