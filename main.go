package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/smilecare/dental-scheduler-api/config"
	"github.com/smilecare/dental-scheduler-api/controllers"
	"github.com/smilecare/dental-scheduler-api/middleware"
	"github.com/smilecare/dental-scheduler-api/models"
	"github.com/smilecare/dental-scheduler-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Dental Scheduler API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.User{}, &models.Doctor{}, &models.Patient{}, &models.Appointment{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Seed the bootstrap admin account
	if err := services.NewAuthService(db, cfg).EnsureAdminUser(); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Initialize Gin router
	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires the middleware and the route table.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Public authentication endpoints
		auth := v1.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.POST("/register/doctor", controllers.RegisterDoctor)
			auth.POST("/register/patient", controllers.RegisterPatient)
		}

		// Everything below requires a valid token
		authorized := v1.Group("")
		authorized.Use(middleware.EnsureValidToken(cfg))
		{
			appointments := authorized.Group("/appointments")
			{
				appointments.GET("", middleware.RequireRoles(models.RoleAdmin), controllers.GetAllAppointments)
				appointments.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleClient), controllers.CreateAppointment)
				appointments.POST("/as-doctor", middleware.RequireRoles(models.RoleAdmin, models.RoleEmployee), controllers.CreateAppointmentAsDoctor)
				appointments.GET("/:id", controllers.GetAppointment)
				appointments.PUT("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleClient, models.RoleEmployee), controllers.EditAppointment)
				appointments.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleClient, models.RoleEmployee), controllers.DeleteAppointment)
				appointments.GET("/patient/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleClient), controllers.GetAppointmentsForPatient)
				appointments.GET("/doctor/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleEmployee), controllers.GetAppointmentsForDoctor)
			}

			calendar := authorized.Group("/calendar")
			{
				calendar.GET("/full", middleware.RequireRoles(models.RoleAdmin), controllers.GetFullCalendar)
				calendar.GET("/doctor/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleEmployee), controllers.GetCalendarForDoctor)
			}

			doctors := authorized.Group("/doctors")
			{
				doctors.GET("", controllers.GetAllDoctors)
				doctors.GET("/:id", controllers.GetDoctor)
				doctors.POST("", middleware.RequireRoles(models.RoleAdmin), controllers.CreateDoctor)
				doctors.PUT("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleEmployee), controllers.EditDoctor)
				doctors.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), controllers.DeleteDoctor)
			}

			patients := authorized.Group("/patients")
			{
				patients.GET("", middleware.RequireRoles(models.RoleAdmin), controllers.GetAllPatients)
				patients.GET("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleClient), controllers.GetPatient)
				patients.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleClient), controllers.CreatePatient)
				patients.PUT("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleClient), controllers.EditPatient)
				patients.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), controllers.DeletePatient)
			}
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Dental Scheduler API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// Get list of tables
	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
