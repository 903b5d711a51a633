package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking-backend/controllers"
	"hotel-booking-backend/middleware"
	"hotel-booking-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers bundles everything SetupRouter wires up.
type Controllers struct {
	Auth         *controllers.AuthController
	Availability *controllers.AvailabilityController
	BlockedDates *controllers.BlockedDateController
	Bookings     *controllers.BookingController
	Enquiries    *controllers.EnquiryController
	Payments     *controllers.PaymentController
	Rooms        *controllers.RoomController
	Settings     *controllers.SettingsController
}

func SetupRouter(ctrls Controllers, auth *services.AuthService) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Public surface: the booking form and its availability check.
		api.GET("/availability", ctrls.Availability.CheckAvailability)
		api.POST("/bookings", ctrls.Bookings.CreateBooking)
		api.GET("/bookings/reference/:ref", ctrls.Bookings.GetBookingByReference)
		api.POST("/conference-enquiries", ctrls.Enquiries.CreateEnquiry)
		api.POST("/auth/login", ctrls.Auth.Login)

		authed := api.Group("")
		authed.Use(middleware.RequireAuth(auth))
		{
			authed.POST("/auth/logout", ctrls.Auth.Logout)
			authed.GET("/auth/me", ctrls.Auth.Me)

			bookings := authed.Group("/bookings")
			{
				bookings.GET("", middleware.RequirePermission(auth, "bookings.view"), ctrls.Bookings.GetBookings)
				bookings.GET("/:id", middleware.RequirePermission(auth, "bookings.view"), ctrls.Bookings.GetBooking)
				bookings.PATCH("/:id/status", middleware.RequirePermission(auth, "bookings.edit"), ctrls.Bookings.UpdateStatus)
				bookings.POST("/:id/cancel", middleware.RequirePermission(auth, "bookings.edit"), ctrls.Bookings.CancelBooking)
			}

			enquiries := authed.Group("/conference-enquiries")
			{
				enquiries.GET("", middleware.RequirePermission(auth, "bookings.view"), ctrls.Enquiries.GetEnquiries)
				enquiries.GET("/:id", middleware.RequirePermission(auth, "bookings.view"), ctrls.Enquiries.GetEnquiry)
			}

			payments := authed.Group("/payments")
			{
				payments.GET("", middleware.RequirePermission(auth, "payments.view"), ctrls.Payments.GetPayments)
				payments.GET("/:id", middleware.RequirePermission(auth, "payments.view"), ctrls.Payments.GetPayment)
				payments.POST("", middleware.RequirePermission(auth, "payments.create"), ctrls.Payments.CreatePayment)
				payments.PATCH("/:id", middleware.RequirePermission(auth, "payments.edit"), ctrls.Payments.UpdatePayment)
				payments.DELETE("/:id", middleware.RequirePermission(auth, "payments.delete"), ctrls.Payments.DeletePayment)
			}

			blocked := authed.Group("/blocked-dates")
			{
				blocked.GET("", middleware.RequirePermission(auth, "blockedDates.view"), ctrls.BlockedDates.List)
				blocked.POST("", middleware.RequirePermission(auth, "blockedDates.manage"), ctrls.BlockedDates.Create)
				blocked.POST("/bulk", middleware.RequirePermission(auth, "blockedDates.manage"), ctrls.BlockedDates.CreateBulk)
				blocked.DELETE("", middleware.RequirePermission(auth, "blockedDates.manage"), ctrls.BlockedDates.Delete)
				blocked.POST("/bulk-delete", middleware.RequirePermission(auth, "blockedDates.manage"), ctrls.BlockedDates.DeleteBulk)
			}

			rooms := authed.Group("/rooms")
			{
				rooms.GET("", ctrls.Rooms.GetRooms)
				rooms.GET("/:id", ctrls.Rooms.GetRoom)
				rooms.POST("", middleware.RequirePermission(auth, "rooms.manage"), ctrls.Rooms.CreateRoom)
				rooms.PATCH("/:id", middleware.RequirePermission(auth, "rooms.manage"), ctrls.Rooms.UpdateRoom)
				rooms.PUT("/:id", middleware.RequirePermission(auth, "rooms.manage"), ctrls.Rooms.UpdateRoom)
				rooms.DELETE("/:id", middleware.RequirePermission(auth, "rooms.manage"), ctrls.Rooms.DeleteRoom)
			}

			settings := authed.Group("/settings")
			{
				settings.GET("", middleware.RequirePermission(auth, "settings.view"), ctrls.Settings.GetSettings)
				settings.PUT("", middleware.RequirePermission(auth, "settings.edit"), ctrls.Settings.UpdateSetting)
			}
		}
	}

	return r
}
