package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

type TargetRequest struct {
	Temperature float64 `json:"temperature"`
}

var targetRequestSchema = z.Struct(z.Shape{
	"temperature": z.Float64().Required(),
})

func (rs *RestfulServer) SyncDeviceSettings(c *gin.Context) {
	synced, err := rs.Cct.Settings.SyncDeviceSettings(c.Param("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, synced)
}

func (rs *RestfulServer) PostTargetFromDevice(c *gin.Context) {
	var req TargetRequest
	if err := targetRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	target, err := rs.Cct.Settings.UpdateTargetFromDevice(c.Param("device_id"), req.Temperature)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

func (rs *RestfulServer) PostTargetFromCloud(c *gin.Context) {
	var req TargetRequest
	if err := targetRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	target, err := rs.Cct.Settings.UpdateTargetFromCloud(c.Param("device_id"), req.Temperature, currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

func (rs *RestfulServer) GetSettingsHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit, should be an int value"})
			return
		}
	}

	history, err := rs.Cct.Temperature.GetTargetTemperatureHistory(c.Param("device_id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
