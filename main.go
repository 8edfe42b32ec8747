package main

import (
	"fmt"
	"log"

	"backend/configs"
	"backend/routes"
	"backend/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	db := configs.DB()

	// migrate
	configs.SetupDatabase()

	if err := configs.SeedAdmin(); err != nil {
		log.Fatalf("seed admin failed: %v", err)
	}

	// Live order feed
	feed := ws.NewOrderFeedHub()
	go feed.Run()

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, db, cfg, feed)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Println("server running at", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
