package routes

import (
	"hvactracker-backend/config"
	"hvactracker-backend/controllers"
	"hvactracker-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Unit routes
		units := api.Group("/units")
		{
			units.POST("", controllers.CreateUnit)
			units.GET("", controllers.GetUnits)
			units.GET("/due", controllers.GetUnitsDue)
			units.GET("/customer/:customerId", controllers.GetUnitsByCustomer)
			units.GET("/:id", controllers.GetUnit)
			units.PUT("/:id", controllers.UpdateUnit)
			units.DELETE("/:id", controllers.DeleteUnit)
			units.POST("/:id/service-completion", controllers.RegisterServiceCompletion)
		}

		// Bulk CSV import
		api.POST("/import", controllers.ImportCSV)

		// Reminder template routes
		reminders := api.Group("/reminder-templates")
		{
			reminders.POST("", controllers.CreateReminderTemplate)
			reminders.GET("", controllers.GetReminderTemplates)
			reminders.PUT("/:id", controllers.UpdateReminderTemplate)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)
	}

	return r
}
