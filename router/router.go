package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/hoststay-app/controllers"
	"github.com/yeremiapane/hoststay-app/middlewares"
	"github.com/yeremiapane/hoststay-app/models"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limiter global per IP. Harus dipasang sebelum route didaftarkan;
	// gin membekukan chain handler saat registrasi.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	propertyCtrl := controllers.NewPropertyController(db)
	teamCtrl := controllers.NewTeamController(db)
	cleaningCtrl := controllers.NewCleaningController(db)
	checklistCtrl := controllers.NewChecklistController(db)
	inventoryCtrl := controllers.NewInventoryController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.GET("/profile", userCtrl.GetProfile)
	api.POST("/logout", userCtrl.Logout)

	// PROPERTIES (host/admin)
	hostOnly := middlewares.RequireRole(models.RoleHost)
	api.GET("/properties", propertyCtrl.GetAllProperties)
	api.POST("/properties", hostOnly, propertyCtrl.CreateProperty)
	api.GET("/properties/:property_id", propertyCtrl.GetPropertyByID)
	api.PATCH("/properties/:property_id", hostOnly, propertyCtrl.UpdateProperty)
	api.DELETE("/properties/:property_id", hostOnly, propertyCtrl.DeleteProperty)
	api.GET("/properties/:property_id/eligibility", propertyCtrl.GetEligibility)
	api.GET("/properties/:property_id/checklist-template", propertyCtrl.GetChecklistTemplate)
	api.POST("/properties/:property_id/checklist-template", hostOnly, propertyCtrl.AddChecklistTemplateItem)

	// TEAMS & MEMBERSHIPS (host/admin)
	api.GET("/teams", teamCtrl.GetAllTeams)
	api.POST("/teams", hostOnly, teamCtrl.CreateTeam)
	api.GET("/teams/:team_id/members", teamCtrl.GetMembers)
	api.POST("/teams/:team_id/properties", hostOnly, teamCtrl.LinkProperty)
	api.DELETE("/teams/:team_id/properties/:property_id", hostOnly, teamCtrl.UnlinkProperty)
	api.POST("/teams/:team_id/memberships", hostOnly, teamCtrl.AddMembership)
	api.PATCH("/teams/:team_id/memberships/:membership_id/deactivate", hostOnly, teamCtrl.DeactivateMembership)
	api.POST("/teams/:team_id/legacy-members", hostOnly, teamCtrl.AddLegacyMember)
	api.PATCH("/teams/:team_id/legacy-members/:member_id/deactivate", hostOnly, teamCtrl.DeactivateLegacyMember)

	// CLEANINGS (lifecycle inti)
	api.GET("/cleanings", cleaningCtrl.GetAllCleanings)
	api.POST("/cleanings", cleaningCtrl.CreateCleaning)
	api.GET("/cleanings/:cleaning_id", cleaningCtrl.GetCleaningByID)
	api.POST("/cleanings/:cleaning_id/start", cleaningCtrl.StartCleaning)
	api.POST("/cleanings/:cleaning_id/complete", cleaningCtrl.CompleteCleaning)
	api.POST("/cleanings/:cleaning_id/cancel", cleaningCtrl.CancelCleaning)
	api.POST("/cleanings/:cleaning_id/reopen", cleaningCtrl.ReopenCleaning)
	api.DELETE("/cleanings/:cleaning_id", cleaningCtrl.DeleteCleaning)
	api.PATCH("/cleanings/:cleaning_id/assign", cleaningCtrl.AssignCleaning)
	api.POST("/cleanings/:cleaning_id/decline", cleaningCtrl.DeclineCleaning)

	// CHECKLIST (snapshot per cleaning)
	api.GET("/cleanings/:cleaning_id/checklist", checklistCtrl.GetChecklist)
	api.PATCH("/cleanings/:cleaning_id/checklist/:item_id", checklistCtrl.ToggleChecklistItem)

	// INVENTORY REVIEWS
	api.GET("/cleanings/:cleaning_id/inventory-review", inventoryCtrl.GetReview)
	api.POST("/cleanings/:cleaning_id/inventory-review/submit", inventoryCtrl.SubmitReview)

	// DASHBOARD
	api.GET("/dashboard/stats", adminCtrl.GetDashboardStats)

	return r
}
