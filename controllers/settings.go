package controllers

import (
	"net/http"

	"allure-backend/models"
	"allure-backend/services"
	"allure-backend/utils"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	settings *services.SettingsService
}

func NewSettingsController(settings *services.SettingsService) *SettingsController {
	return &SettingsController{settings: settings}
}

// GetSettings returns the boutique profile, or the defaults when it has
// never been saved
func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings, configured, err := sc.settings.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings":   settings,
		"configured": configured,
	})
}

func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var input services.SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	settings, err := sc.settings.Save(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Settings saved successfully",
		"settings":   settings,
		"configured": true,
	})
}

type statusOption struct {
	Value models.OrderStatus `json:"value"`
	Label string             `json:"label"`
}

// GetGarmentCatalog describes the garment types, their measurement fields
// and the order status flow for the order form.
func GetGarmentCatalog(c *gin.Context) {
	statuses := make([]statusOption, 0, len(models.OrderStatusFlow))
	for _, s := range models.OrderStatusFlow {
		statuses = append(statuses, statusOption{Value: s, Label: s.Label()})
	}
	c.JSON(http.StatusOK, gin.H{
		"core_fields": models.CoreMeasurements,
		"garments":    models.GarmentCatalog(),
		"statuses":    statuses,
	})
}
