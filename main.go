package main

import (
	"context"
	"log"
	"time"

	"github.com/parsguard/vpn-portal/config"
	"github.com/parsguard/vpn-portal/models"
	"github.com/parsguard/vpn-portal/routes"
	"github.com/parsguard/vpn-portal/storage"
	"github.com/parsguard/vpn-portal/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer utils.Logger.Sync()

	db := config.InitDatabase(
		&models.Admin{},
		&models.Platform{},
		&models.Application{},
		&models.Tutorial{},
		&models.Announcement{},
	)

	store := storage.New(db)
	seedAdmin(store, cfg)

	sessions := utils.NewRedisSessionStore(utils.GetRedis())
	router := routes.SetupRouter(db, sessions)

	utils.Sugar.Infof("listening on :%s", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

// seedAdmin creates the bootstrap admin account when the admins table is
// empty, so a fresh deployment can log in without manual SQL.
func seedAdmin(store *storage.Storage, cfg config.AppConfig) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := store.CountAdmins(ctx)
	if err != nil {
		log.Fatalf("failed to count admins: %v", err)
	}
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("failed to hash bootstrap admin password: %v", err)
	}
	admin := models.Admin{Username: cfg.AdminUsername, PasswordHash: hash}
	if err := store.CreateAdmin(ctx, &admin); err != nil {
		log.Fatalf("failed to create bootstrap admin: %v", err)
	}
	utils.Sugar.Warnf("created bootstrap admin %q, change the password immediately", cfg.AdminUsername)
}
