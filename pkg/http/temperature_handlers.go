package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/common"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

type ProbeReadingRequest struct {
	ProbeID     *string  `json:"probe_id" zog:"probe_id"`
	Temperature *float64 `json:"temperature"`
}

type TemperatureUpdateRequest struct {
	DeviceID           string                `json:"device_id" zog:"device_id"`
	Readings           []ProbeReadingRequest `json:"readings"`
	AverageTemperature *float64              `json:"average_temperature" zog:"average_temperature"`
}

var temperatureUpdateRequestSchema = z.Struct(z.Shape{
	"deviceID": z.String().Required(),
	"readings": z.Slice(z.Struct(z.Shape{
		"probeID":     z.Ptr(z.String()),
		"temperature": z.Ptr(z.Float64()),
	})),
	"averageTemperature": z.Ptr(z.Float64()),
})

func (req *TemperatureUpdateRequest) toUpdate() *cct.TemperatureUpdate {
	return &cct.TemperatureUpdate{
		DeviceID: req.DeviceID,
		Readings: common.Mapper(req.Readings, func(r ProbeReadingRequest) cct.ProbeReading {
			return cct.ProbeReading{ProbeID: r.ProbeID, Temperature: r.Temperature}
		}),
		AverageTemperature: req.AverageTemperature,
	}
}

func (rs *RestfulServer) PostTemperatureUpdate(c *gin.Context) {
	var req TemperatureUpdateRequest
	if err := temperatureUpdateRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if !rs.authorizeDevice(c, req.DeviceID) {
		return
	}

	result, err := rs.Cct.Temperature.ProcessTemperatureUpdate(req.toUpdate())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            result.Message,
		"stored":             result.Stored,
		"target_temperature": result.TargetTemperature,
	})
}

type TargetTemperatureRequest struct {
	DeviceID    string  `json:"device_id" zog:"device_id"`
	Temperature float64 `json:"temperature"`
	SetByUserID *int    `json:"set_by_user_id" zog:"set_by_user_id"`
}

var targetTemperatureRequestSchema = z.Struct(z.Shape{
	"deviceID":    z.String().Required(),
	"temperature": z.Float64().Required(),
	"setByUserID": z.Ptr(z.Int().GT(0)),
})

func (rs *RestfulServer) PostTargetTemperature(c *gin.Context) {
	var req TargetTemperatureRequest
	if err := targetTemperatureRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if !rs.authorizeDevice(c, req.DeviceID) {
		return
	}

	var err error
	if req.SetByUserID != nil {
		// the companion app relays the user; ownership is still enforced
		_, err = rs.Cct.Settings.UpdateTargetFromCloud(req.DeviceID, req.Temperature, uint(*req.SetByUserID))
	} else {
		_, err = rs.Cct.Temperature.SetTargetTemperature(req.DeviceID, req.Temperature, nil)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Target temperature updated successfully",
		"temperature": req.Temperature,
	})
}

func historyQuery(c *gin.Context, deviceID string, probeID *string) (*cct.HistoryQuery, bool) {
	query := &cct.HistoryQuery{DeviceID: deviceID, ProbeID: probeID}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit, should be an int value"})
			return nil, false
		}
		query.Limit = limit
	}

	if raw := c.Query("is_average"); raw != "" {
		isAverage, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid is_average, should be true or false"})
			return nil, false
		}
		query.IsAverage = &isAverage
	}

	return query, true
}

func (rs *RestfulServer) GetTemperatureHistory(c *gin.Context) {
	var probeID *string
	if raw := c.Query("probe_id"); raw != "" {
		probeID = &raw
	}

	query, ok := historyQuery(c, c.Param("device_id"), probeID)
	if !ok {
		return
	}

	readings, err := rs.Cct.Temperature.GetTemperatureHistory(query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, readings)
}

func (rs *RestfulServer) GetProbeTemperatureHistory(c *gin.Context) {
	probeID := c.Param("probe_id")

	query, ok := historyQuery(c, c.Param("device_id"), &probeID)
	if !ok {
		return
	}

	readings, err := rs.Cct.Temperature.GetTemperatureHistory(query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, readings)
}

// GetTargetTemperature answers null when no target was ever set.
func (rs *RestfulServer) GetTargetTemperature(c *gin.Context) {
	target, err := rs.Cct.Temperature.GetLatestTargetTemperature(c.Param("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

func (rs *RestfulServer) GetAverageTemperature(c *gin.Context) {
	average, err := rs.Cct.Temperature.CalculateAverageTemperature(c.Param("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if average == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No connected probes with temperature readings found"})
		return
	}
	c.JSON(http.StatusOK, *average)
}
