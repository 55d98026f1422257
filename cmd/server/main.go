package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"account_backend/internal/app/di"
	"account_backend/internal/app/router"
	accounthandler "account_backend/internal/feature/account/transport/handler"
	accountusecase "account_backend/internal/feature/account/usecase"
	infradb "account_backend/internal/platform/db"
	"account_backend/internal/platform/password"
	infraredis "account_backend/internal/platform/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Sessions fall back to the database.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := di.NewUserRepository(rdb, db)
	sessionStore := di.NewSessionStore(rdb, db)

	// Usecase
	accountUC := accountusecase.NewAccountUsecase(userRepo, sessionStore, password.NewBcryptHasher())

	// Handler
	accountH := accounthandler.NewAccountHandler(accountUC)

	// ルータ生成
	router := router.NewRouter(accountH, sessionStore)

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
