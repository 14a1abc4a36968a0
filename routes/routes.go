package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"hotel-admin/controllers"
	"hotel-admin/middleware"
	"hotel-admin/utils"
)

// Controllers bundles every handler group mounted by SetupRouter.
type Controllers struct {
	Bookings  *controllers.BookingController
	Logs      *controllers.BookingLogController
	Rooms     *controllers.RoomController
	RoomTypes *controllers.RoomTypeController
	Dashboard *controllers.DashboardController
}

func parseCorsOrigins(raw []string) []string {
	origins := make([]string, 0, len(raw))
	for _, part := range raw {
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

func SetupRouter(corsOrigins []string, ctl Controllers) *gin.Engine {
	if err := utils.RegisterValidators(); err != nil {
		log.Warn().Err(err).Msg("custom validators not registered")
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())

	origins := parseCorsOrigins(corsOrigins)
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
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.POST("/check-availability", ctl.Bookings.CheckAvailability)
			bookings.POST("/book", ctl.Bookings.CreateBooking)

			admin := bookings.Group("/admin")
			{
				admin.POST("/update-status", ctl.Bookings.UpdateStatus)
				admin.GET("/all", ctl.Bookings.GetAllBookings)
				admin.GET("/calendar", ctl.Bookings.Calendar)
				admin.GET("/availability", ctl.Bookings.AvailabilityMatrix)
				admin.GET("/logs", ctl.Logs.GetLogs)
				admin.GET("/logs/export", ctl.Logs.Export)
				admin.GET("/:id/logs", ctl.Logs.GetBookingLogs)
			}

			bookings.GET("/:id", ctl.Bookings.GetBooking)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("/check/:room_number", ctl.Rooms.CheckRoom)

			admin := rooms.Group("/admin")
			{
				admin.GET("/grouped", ctl.Rooms.Grouped)
				admin.GET("/getRooms", ctl.Rooms.GetRooms)
				admin.GET("/getRoomTypes", ctl.Rooms.GetRoomTypes)
				admin.POST("/addRoom", ctl.Rooms.AddRoom)
				admin.POST("/updateRoom", ctl.Rooms.UpdateRoom)
				admin.POST("/deleteRoom", ctl.Rooms.DeleteRoom)
			}
		}

		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", ctl.RoomTypes.GetRoomTypes)
			roomTypes.GET("/:id", ctl.RoomTypes.GetRoomType)
			roomTypes.POST("", ctl.RoomTypes.CreateRoomType)
			roomTypes.DELETE("/:id", ctl.RoomTypes.DeleteRoomType)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/stats", ctl.Dashboard.Stats)
			dashboard.GET("/recent-bookings", ctl.Dashboard.RecentBookings)
		}
	}

	return r
}
