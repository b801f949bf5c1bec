package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"charting/config"
	"charting/controllers"
	"charting/helpers"
	"charting/repositories"
	"charting/routes"
	"charting/services"
)

func main() {

	log.Println("Starting charting service...")

	conf := config.Load()

	secret := conf.GetString("jwtSecret")
	if secret == "" {
		secret = helpers.GenerateRandomKey()
		log.Println("No CHARTING_JWTSECRET set; using an ephemeral signing key")
	}
	helpers.SetJWTKey(secret)

	client := config.Connect(conf.GetString("mongoUri"))
	db := config.Database(client, conf.GetString("mongoDatabase"))

	templateRepo := repositories.NewMongoTemplateRepository(db)
	entryRepo := repositories.NewMongoEntryRepository(db)
	analyticsRepo := repositories.NewMongoAnalyticsRepository(db)
	userRepo := repositories.NewMongoUserRepository(db)

	templateService := services.NewTemplateService(templateRepo)
	entryService := services.NewEntryService(entryRepo, templateService)
	analyticsService := services.NewAnalyticsService(analyticsRepo, entryService, templateService)

	uc := controllers.NewUserController(userRepo)
	tc := controllers.NewTemplateController(templateService)
	ec := controllers.NewEntryController(entryService)
	ac := controllers.NewAnalyticsController(analyticsService)

	if !conf.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	api := r.Group("/api")
	routes.SetupRoutes(api, uc, tc, ec, ac)

	addr := ":" + conf.GetString("port")
	log.Printf("Listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
