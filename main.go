package main

import (
	"github.com/lovepoints/lovepoints/config"
	"github.com/lovepoints/lovepoints/models"
	"github.com/lovepoints/lovepoints/routes"
	"github.com/lovepoints/lovepoints/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.PairCode{}, &models.Challenge{}, &models.PointsLog{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
