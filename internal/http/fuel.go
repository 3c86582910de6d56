package http

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// FuelTamilNadu godoc
// @Summary Today's fuel prices, stored data preferred over mock
// @Tags fuel
// @Produce json
// @Success 200 {object} map[string]any
// @Router /fuel/tamilnadu [get]
func (h *Handler) FuelTamilNadu(c *gin.Context) {
	fp, source, err := h.Fuel.Today(c.Request.Context())
	if err != nil {
		serverError(c)
		return
	}
	msg := "Using stored fuel prices data"
	if source != "database" {
		msg = "Using mock data as fallback"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"source":      source,
		"message":     msg,
		"lastUpdated": time.Now().UTC(),
		"data":        fp,
	})
}

// FuelStored godoc
// @Summary Today's persisted target-city prices
// @Tags fuel
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /fuel/stored [get]
func (h *Handler) FuelStored(c *gin.Context) {
	fp, err := h.Fuel.StoredToday(c.Request.Context())
	if err != nil {
		serverError(c)
		return
	}
	if fp == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "No stored data found for today",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(fp.Cities),
		"date":    fp.Date,
		"cities":  fp.Cities,
	})
}

// FuelCity godoc
// @Summary One target city's price for today
// @Tags fuel
// @Produce json
// @Param cityName path string true "city name"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /fuel/city/{cityName} [get]
func (h *Handler) FuelCity(c *gin.Context) {
	city := c.Param("cityName")
	if !h.Fuel.IsTargetCity(city) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Data for " + city + " is not available. Available cities: " + strings.Join(h.Fuel.Cities, ", "),
		})
		return
	}
	cp, source, ok, err := h.Fuel.CityToday(c.Request.Context(), city)
	if err != nil {
		serverError(c)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Fuel price data for " + city + " not found",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "source": source, "city": cp})
}

// FuelCities lists the fixed target cities.
func (h *Handler) FuelCities(c *gin.Context) {
	cities := make([]string, len(h.Fuel.Cities))
	copy(cities, h.Fuel.Cities)
	sort.Strings(cities)
	c.JSON(http.StatusOK, gin.H{"success": true, "cities": cities})
}

// FuelTriggerUpdate godoc
// @Summary Run the fetch-and-store job now
// @Tags fuel
// @Produce json
// @Success 200 {object} map[string]any
// @Router /fuel/trigger-update [post]
func (h *Handler) FuelTriggerUpdate(c *gin.Context) {
	res := h.Fuel.RunUpdate(c.Request.Context())
	if !res.Success {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "Failed to update fuel prices",
			"date":    res.Date,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Successfully updated fuel prices",
		"date":        res.Date,
		"citiesCount": res.Cities,
	})
}
