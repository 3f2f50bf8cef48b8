package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

type DeviceRegisterRequest struct {
	DeviceID        *string `json:"device_id" zog:"device_id"`
	Name            *string `json:"name"`
	Model           string  `json:"model"`
	FirmwareVersion string  `json:"firmware_version" zog:"firmware_version"`
}

var deviceRegisterRequestSchema = z.Struct(z.Shape{
	"deviceID":        z.Ptr(z.String()),
	"name":            z.Ptr(z.String()),
	"model":           z.String().Required(),
	"firmwareVersion": z.String().Required(),
})

func (rs *RestfulServer) RegisterDevice(c *gin.Context) {
	var req DeviceRegisterRequest
	if err := deviceRegisterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	result, err := rs.Cct.Identity.RegisterDevice(&cct.DeviceRegistration{
		DeviceID:        req.DeviceID,
		Name:            req.Name,
		Model:           req.Model,
		FirmwareVersion: req.FirmwareVersion,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"device_id":         result.Device.DeviceID,
		"api_key":           result.APIKey,
		"association_token": result.AssociationToken,
		"message":           "Device registered successfully",
	})
}

func (rs *RestfulServer) GenerateDeviceID(c *gin.Context) {
	deviceID, err := rs.Cct.Identity.GenerateUniqueDeviceID()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"device_id": deviceID})
}

type AssociateRequest struct {
	DeviceID         string `json:"device_id" zog:"device_id"`
	UserID           int    `json:"user_id" zog:"user_id"`
	AssociationToken string `json:"association_token" zog:"association_token"`
}

// The unauthenticated association path has to prove possession of the
// device, so the token is mandatory here. Signed-in owners use
// POST /users/me/devices/:device_id instead.
var associateRequestSchema = z.Struct(z.Shape{
	"deviceID":         z.String().Required(),
	"userID":           z.Int().Required().GT(0),
	"associationToken": z.String().Required(),
})

func (rs *RestfulServer) AssociateDevice(c *gin.Context) {
	var req AssociateRequest
	if err := associateRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if _, err := rs.Cct.Identity.AssociateDeviceWithUser(req.DeviceID, uint(req.UserID), &req.AssociationToken); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"device_id": req.DeviceID,
		"user_id":   req.UserID,
		"success":   true,
		"message":   "Device successfully associated with user",
	})
}

type ProbeRegisterRequest struct {
	ProbeID string  `json:"probe_id" zog:"probe_id"`
	Name    *string `json:"name"`
	Model   string  `json:"model"`
}

var probeRegisterRequestSchema = z.Struct(z.Shape{
	"probeID": z.String().Required(),
	"name":    z.Ptr(z.String()),
	"model":   z.String(),
})

func (rs *RestfulServer) RegisterProbe(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req ProbeRegisterRequest
	if err := probeRegisterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	probe, err := rs.Cct.Identity.RegisterProbe(deviceID, &cct.ProbeRegistration{
		ProbeID: req.ProbeID,
		Name:    req.Name,
		Model:   req.Model,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"probe_id":  probe.ProbeID,
		"device_id": deviceID,
		"message":   "Probe registered successfully",
	})
}

func (rs *RestfulServer) GetDeviceProbes(c *gin.Context) {
	probes, err := rs.Cct.Identity.GetDeviceProbes(c.Param("device_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, probes)
}

func (rs *RestfulServer) UpdateDeviceConnection(c *gin.Context) {
	connected, ok := boolQuery(c, "is_connected", true)
	if !ok {
		return
	}

	device, err := rs.Cct.Identity.UpdateDeviceConnection(c.Param("device_id"), connected)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

func (rs *RestfulServer) UpdateProbeConnection(c *gin.Context) {
	deviceID := c.Param("device_id")
	probeID := c.Param("probe_id")

	connected, ok := boolQuery(c, "is_connected", true)
	if !ok {
		return
	}

	// a device may only report on its own probes
	probes, err := rs.Cct.Identity.GetDeviceProbes(deviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	owned := false
	for _, p := range probes {
		if p.ProbeID == probeID {
			owned = true
			break
		}
	}
	if !owned {
		c.JSON(http.StatusNotFound, gin.H{"error": "Probe not found"})
		return
	}

	probe, err := rs.Cct.Identity.UpdateProbeConnection(probeID, connected)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, probe)
}
