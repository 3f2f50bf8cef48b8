package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/common"
)

type RestfulServer struct {
	Server           *gin.Engine
	Cct              *cct.CCT
	RateLimiterStore *cct.RateLimiterStore
}

func logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameRestfulServer)
}

func (rs *RestfulServer) GetLimiter(deviceID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	}
	return rs.RateLimiterStore.GetLimiter(deviceID)
}

func (rs *RestfulServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := rs.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(deviceID string, deviceRate float64, deviceBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(deviceID, rate.Limit(deviceRate), deviceBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)
	rs.Server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := rs.Server.Group("/api/v1")

	devices := api.Group("/devices")
	{
		devices.POST("/register", rs.RegisterDevice)
		devices.POST("/generate-id", rs.GenerateDeviceID)
		devices.POST("/associate", rs.AssociateDevice)
		devices.POST("/:device_id/limiter", rs.PostLimiter)

		device := devices.Group("/:device_id", rs.RequireDeviceKey())
		device.POST("/probes/register", rs.RegisterProbe)
		device.GET("/probes", rs.GetDeviceProbes)
		device.PUT("/connection", rs.UpdateDeviceConnection)
		device.PUT("/probes/:probe_id/connection", rs.UpdateProbeConnection)
	}

	temperature := api.Group("/temperature")
	{
		temperature.POST("/update", rs.PostTemperatureUpdate)
		temperature.POST("/target", rs.PostTargetTemperature)

		device := temperature.Group("/:device_id", rs.RequireDeviceKey())
		device.GET("/history", rs.GetTemperatureHistory)
		device.GET("/probes/:probe_id/history", rs.GetProbeTemperatureHistory)
		device.GET("/target", rs.GetTargetTemperature)
		device.GET("/average", rs.GetAverageTemperature)
	}

	settings := api.Group("/settings")
	{
		settings.POST("/user/:device_id/target", rs.RequireSession(), rs.PostTargetFromCloud)

		device := settings.Group("/:device_id", rs.RequireDeviceKey())
		device.GET("/sync", rs.SyncDeviceSettings)
		device.POST("/target", rs.PostTargetFromDevice)
		device.GET("/history", rs.GetSettingsHistory)
	}

	users := api.Group("/users")
	{
		users.POST("/register", rs.RegisterUser)
		users.POST("/token", rs.IssueToken)
		users.POST("/otp/send", rs.SendOTP)
		users.POST("/otp/verify", rs.VerifyOTP)

		me := users.Group("/me", rs.RequireSession())
		me.GET("", rs.GetMe)
		me.PUT("", rs.UpdateMe)
		me.DELETE("", rs.DeregisterMe)
		me.GET("/devices", rs.GetMyDevices)
		me.POST("/devices/:device_id", rs.AssociateMyDevice)
		me.PATCH("/devices/:device_id", rs.UpdateMyDevice)
		me.GET("/notification-settings", rs.GetNotificationSettings)
		me.PUT("/notification-settings", rs.UpdateNotificationSettings)
		me.POST("/triggers", rs.CreateTrigger)
		me.GET("/triggers", rs.ListTriggers)
		me.PUT("/triggers/:trigger_id", rs.UpdateTrigger)
		me.DELETE("/triggers/:trigger_id", rs.DeleteTrigger)
	}

	notifications := api.Group("/notifications", rs.RequireSession())
	{
		notifications.GET("", rs.ListNotifications)
		notifications.PUT("/read-all", rs.MarkAllNotificationsRead)
		notifications.PUT("/:notification_id/read", rs.MarkNotificationRead)
		notifications.POST("/test", rs.SendTestNotification)
	}
}
