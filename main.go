package main

import (
	"lms/config"
	"lms/database"
	authRoutes "lms/routers/authRoutes"
	cartRoutes "lms/routers/cartRoutes"
	certificateRoutes "lms/routers/certificateRoutes"
	courseRoutes "lms/routers/courseRoutes"
	paymentRoutes "lms/routers/paymentRoutes"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	cartRoutes.SetupCartRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)

	utils.StartCourseScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
