package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/cct-cloud-service/pkg/cct"
	"liyu1981.xyz/cct-cloud-service/pkg/models"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

type UserRegisterRequest struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	PhoneNumber *string `json:"phone_number" zog:"phone_number"`
	OTP         *string `json:"otp" zog:"otp"`
}

var userRegisterRequestSchema = z.Struct(z.Shape{
	"username":    z.String().Required(),
	"email":       z.String().Email().Required(),
	"password":    z.String().Min(6).Required(),
	"phoneNumber": z.Ptr(z.String()),
	"OTP":         z.Ptr(z.String()),
})

func (rs *RestfulServer) RegisterUser(c *gin.Context) {
	var req UserRegisterRequest
	if err := userRegisterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	user, err := rs.Cct.User.CreateUser(&cct.UserRegistration{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		OTP:         req.OTP,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var tokenRequestSchema = z.Struct(z.Shape{
	"username": z.String().Required(),
	"password": z.String().Required(),
})

// IssueToken accepts either a JSON body or an OAuth2 password form.
func (rs *RestfulServer) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := tokenRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	user, err := rs.Cct.User.AuthenticateUser(req.Username, req.Password)
	if err != nil {
		unauthorized(c, "Incorrect username or password")
		return
	}

	token, err := rs.Cct.Credential.IssueSessionToken(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (rs *RestfulServer) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

type UserUpdateRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number" zog:"phone_number"`
	Password    *string `json:"password"`
}

var userUpdateRequestSchema = z.Struct(z.Shape{
	"username":    z.Ptr(z.String()),
	"email":       z.Ptr(z.String().Email()),
	"phoneNumber": z.Ptr(z.String()),
	"password":    z.Ptr(z.String().Min(6)),
})

func (rs *RestfulServer) UpdateMe(c *gin.Context) {
	var req UserUpdateRequest
	if err := userUpdateRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	user, err := rs.Cct.User.UpdateUser(currentUser(c).ID, &cct.UserUpdate{
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (rs *RestfulServer) DeregisterMe(c *gin.Context) {
	if err := rs.Cct.User.DeregisterUser(currentUser(c).ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User and associated data deleted"})
}

func (rs *RestfulServer) GetMyDevices(c *gin.Context) {
	devices, err := rs.Cct.User.GetUserDevices(currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, devices)
}

func (rs *RestfulServer) AssociateMyDevice(c *gin.Context) {
	device, err := rs.Cct.Identity.AssociateDeviceWithUser(c.Param("device_id"), currentUser(c).ID, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

type UserDeviceUpdateRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active" zog:"is_active"`
}

var userDeviceUpdateRequestSchema = z.Struct(z.Shape{
	"name":     z.Ptr(z.String()),
	"isActive": z.Ptr(z.Bool()),
})

func (rs *RestfulServer) UpdateMyDevice(c *gin.Context) {
	var req UserDeviceUpdateRequest
	if err := userDeviceUpdateRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	device, err := rs.Cct.User.UpdateUserDevice(currentUser(c).ID, c.Param("device_id"), &cct.UserDeviceUpdate{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

func (rs *RestfulServer) GetNotificationSettings(c *gin.Context) {
	settings, err := rs.Cct.Settings.GetNotificationSettings(currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type SettingsUpdateRequest struct {
	EmailEnabled     *bool    `json:"email_enabled" zog:"email_enabled"`
	SMSEnabled       *bool    `json:"sms_enabled" zog:"sms_enabled"`
	PushEnabled      *bool    `json:"push_enabled" zog:"push_enabled"`
	MaxTempThreshold *float64 `json:"max_temp_threshold" zog:"max_temp_threshold"`
	MinTempThreshold *float64 `json:"min_temp_threshold" zog:"min_temp_threshold"`
	ConnectionAlerts *bool    `json:"connection_alerts" zog:"connection_alerts"`

	ClearMaxTempThreshold bool `json:"clear_max_temp_threshold" zog:"clear_max_temp_threshold"`
	ClearMinTempThreshold bool `json:"clear_min_temp_threshold" zog:"clear_min_temp_threshold"`
}

var settingsUpdateRequestSchema = z.Struct(z.Shape{
	"emailEnabled":          z.Ptr(z.Bool()),
	"SMSEnabled":            z.Ptr(z.Bool()),
	"pushEnabled":           z.Ptr(z.Bool()),
	"maxTempThreshold":      z.Ptr(z.Float64()),
	"minTempThreshold":      z.Ptr(z.Float64()),
	"connectionAlerts":      z.Ptr(z.Bool()),
	"clearMaxTempThreshold": z.Bool(),
	"clearMinTempThreshold": z.Bool(),
})

func (rs *RestfulServer) UpdateNotificationSettings(c *gin.Context) {
	var req SettingsUpdateRequest
	if err := settingsUpdateRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	settings, err := rs.Cct.Settings.UpdateNotificationSettings(currentUser(c).ID, &cct.SettingsUpdate{
		EmailEnabled:          req.EmailEnabled,
		SMSEnabled:            req.SMSEnabled,
		PushEnabled:           req.PushEnabled,
		MaxTempThreshold:      req.MaxTempThreshold,
		MinTempThreshold:      req.MinTempThreshold,
		ConnectionAlerts:      req.ConnectionAlerts,
		ClearMaxTempThreshold: req.ClearMaxTempThreshold,
		ClearMinTempThreshold: req.ClearMinTempThreshold,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

type TriggerCreateRequest struct {
	Name           string  `json:"name"`
	ConditionType  string  `json:"condition_type" zog:"condition_type"`
	ThresholdValue float64 `json:"threshold_value" zog:"threshold_value"`
	DeviceID       *string `json:"device_id" zog:"device_id"`
	ProbeID        *string `json:"probe_id" zog:"probe_id"`
	IsActive       *bool   `json:"is_active" zog:"is_active"`
}

var triggerCreateRequestSchema = z.Struct(z.Shape{
	"name":           z.String().Required(),
	"conditionType":  z.String().Required(),
	"thresholdValue": z.Float64().Required(),
	"deviceID":       z.Ptr(z.String()),
	"probeID":        z.Ptr(z.String()),
	"isActive":       z.Ptr(z.Bool()),
})

func (rs *RestfulServer) CreateTrigger(c *gin.Context) {
	var req TriggerCreateRequest
	if err := triggerCreateRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	trigger, err := rs.Cct.Settings.CreateCustomTrigger(currentUser(c).ID, &cct.CustomTriggerInput{
		Name:           req.Name,
		ConditionType:  models.ConditionType(req.ConditionType),
		ThresholdValue: req.ThresholdValue,
		DeviceID:       req.DeviceID,
		ProbeID:        req.ProbeID,
		IsActive:       req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trigger)
}

func (rs *RestfulServer) ListTriggers(c *gin.Context) {
	triggers, err := rs.Cct.Settings.ListCustomTriggers(currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, triggers)
}

type TriggerUpdateRequest struct {
	Name           *string  `json:"name"`
	ConditionType  *string  `json:"condition_type" zog:"condition_type"`
	ThresholdValue *float64 `json:"threshold_value" zog:"threshold_value"`
	IsActive       *bool    `json:"is_active" zog:"is_active"`
}

var triggerUpdateRequestSchema = z.Struct(z.Shape{
	"name":           z.Ptr(z.String()),
	"conditionType":  z.Ptr(z.String()),
	"thresholdValue": z.Ptr(z.Float64()),
	"isActive":       z.Ptr(z.Bool()),
})

func (rs *RestfulServer) UpdateTrigger(c *gin.Context) {
	triggerID, ok := uintParam(c, "trigger_id")
	if !ok {
		return
	}

	var req TriggerUpdateRequest
	if err := triggerUpdateRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	update := &cct.CustomTriggerUpdate{
		Name:           req.Name,
		ThresholdValue: req.ThresholdValue,
		IsActive:       req.IsActive,
	}
	if req.ConditionType != nil {
		conditionType := models.ConditionType(*req.ConditionType)
		update.ConditionType = &conditionType
	}

	trigger, err := rs.Cct.Settings.UpdateCustomTrigger(currentUser(c).ID, triggerID, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trigger)
}

func (rs *RestfulServer) DeleteTrigger(c *gin.Context) {
	triggerID, ok := uintParam(c, "trigger_id")
	if !ok {
		return
	}

	trigger, err := rs.Cct.Settings.DeleteCustomTrigger(currentUser(c).ID, triggerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trigger)
}

type OTPSendRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

var otpSendRequestSchema = z.Struct(z.Shape{
	"email":    z.String().Email().Required(),
	"username": z.String(),
})

func (rs *RestfulServer) SendOTP(c *gin.Context) {
	var req OTPSendRequest
	if err := otpSendRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if _, err := rs.Cct.OTP.IssueOTP(req.Email, req.Username); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

type OTPVerifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp" zog:"otp"`
}

var otpVerifyRequestSchema = z.Struct(z.Shape{
	"email": z.String().Email().Required(),
	"OTP":   z.String().Required(),
})

func (rs *RestfulServer) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := otpVerifyRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if !rs.Cct.OTP.VerifyOTP(req.Email, req.OTP) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP verified"})
}
