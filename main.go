package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Rejoice2374/Homely-API/config"
	"github.com/Rejoice2374/Homely-API/handlers"
	authmw "github.com/Rejoice2374/Homely-API/middleware"
	"github.com/Rejoice2374/Homely-API/relations"
	"github.com/Rejoice2374/Homely-API/routes"
	"github.com/Rejoice2374/Homely-API/session"
	"github.com/Rejoice2374/Homely-API/store"
	"github.com/Rejoice2374/Homely-API/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config.ConnectDB()
	defer config.DisconnectDB()

	utils.InitRedis()

	users := store.NewUserStore()
	properties := store.NewPropertyStore()
	wishlists := store.NewWishlistStore()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Printf("Warning: %v", err)
	}
	if err := wishlists.EnsureIndexes(ctx); err != nil {
		log.Printf("Warning: %v", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}
	sessions := session.NewManager(users, []byte(secret), tokenExpiry())
	engine := relations.NewEngine(users, properties, wishlists)

	uc := handlers.NewUserController(users, sessions, engine)
	pc := handlers.NewPropertyController(properties, engine)
	wc := handlers.NewWishlistController(engine)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	routes.RegisterRoutes(e, authmw.Auth(sessions), uc, pc, wc)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}

func tokenExpiry() time.Duration {
	hours := 24
	if v := os.Getenv("JWT_EXPIRY_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			hours = n
		}
	}
	return time.Duration(hours) * time.Hour
}
