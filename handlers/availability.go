package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"bookify/api"
	"bookify/models"
	"bookify/services"
	"bookify/utils"
)

// AvailabilityHandler answers snapshot-backed filter queries and time-slot
// lookups outside any wizard session.
type AvailabilityHandler struct {
	Loader *services.AvailabilityLoader
	Client *api.Client
	Slots  *services.SlotService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(loader *services.AvailabilityLoader, client *api.Client, slots *services.SlotService) *AvailabilityHandler {
	return &AvailabilityHandler{Loader: loader, Client: client, Slots: slots}
}

// GetAvailability filters the cached snapshot by the optional category,
// location and employee query parameters. When a serviceId is given the
// response also carries that service's categories, employees and locations.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	availability := h.Loader.Load(c.Request.Context(), c.Query("reload") == "1")

	categorySlug := c.Query("category")
	locationID := intQuery(c, "location")
	employeeID := intQuery(c, "employee")

	response := gin.H{
		"services": availability.GetAvailableServices(categorySlug, locationID, employeeID),
	}
	if serviceID := intQuery(c, "serviceId"); serviceID != 0 {
		response["categories"] = availability.GetAvailableServiceCategories(serviceID)
		response["employees"] = availability.GetAvailableEmployees(serviceID, locationID)
		response["locations"] = availability.GetAvailableLocations(serviceID, employeeID)
	}
	c.JSON(http.StatusOK, response)
}

// GetSlots proxies a time-slot query for a service over a date range.
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	serviceID := intQuery(c, "serviceId")
	if serviceID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serviceId is required"})
		return
	}

	from, err := utils.ParseDate(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date", "details": err.Error()})
		return
	}
	to, err := utils.ParseDate(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date", "details": err.Error()})
		return
	}

	query := api.TimeSlotsQuery{
		ServiceID:   serviceID,
		EmployeeIDs: intListQuery(c, "employees"),
		LocationIDs: intListQuery(c, "locations"),
		Period:      models.NewDatePeriod(from, to),
		SinceToday:  c.Query("sinceToday") != "0",
	}
	slots, err := h.Client.GetTimeSlots(c.Request.Context(), query)
	if err != nil {
		// The backend could not answer; compute the slots from schedules
		// and reservations instead.
		slots = h.Slots.ComputeTimeSlots(c.Request.Context(), query)
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func intQuery(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}

func intListQuery(c *gin.Context, name string) []int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
