package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"tripapi/internal/domain"
	"tripapi/internal/http/middleware"
	"tripapi/internal/services"

	"github.com/gin-gonic/gin"
)

type vendorUpdatePayload struct {
	VendorID string `json:"vendor_id" binding:"required"`
}

func tripService(c *gin.Context) services.TripService {
	return services.TripService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/trips/count
func GetTripCount(c *gin.Context) {
	out, err := tripService(c).Count(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trips/sample?n=5
func GetSampleTrips(c *gin.Context) {
	n, ok := intQuery(c, "n", 5)
	if !ok {
		return
	}
	out, err := tripService(c).Sample(c.Request.Context(), n)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trips/pages?page=1&page_size=100&include_count=true
func GetTripsByPage(c *gin.Context) {
	page, ok := intQuery(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := intQuery(c, "page_size", 100)
	if !ok {
		return
	}
	includeCount, ok := boolQuery(c, "include_count", true)
	if !ok {
		return
	}

	out, err := tripService(c).ListByPage(c.Request.Context(), page, pageSize, includeCount)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trips/stream?cursor=0&page_size=100
func GetTripsByCursor(c *gin.Context) {
	cursor, ok := int64Query(c, "cursor", 0)
	if !ok {
		return
	}
	pageSize, ok := intQuery(c, "page_size", 100)
	if !ok {
		return
	}

	out, err := tripService(c).ListByCursor(c.Request.Context(), cursor, pageSize)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trips/analytics
func GetTripAnalytics(c *gin.Context) {
	out, err := tripService(c).Analytics(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trips/analytics/report (PDF)
func GetTripAnalyticsReport(c *gin.Context) {
	svc := services.ReportDocService{
		Trips:     tripService(c),
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.Generate(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/trips/:id
func GetTripByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "trip_id", Msg: "must be a positive integer", Err: err})
		return
	}

	trip, err := tripService(c).GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips/:id/vendor
func UpdateTripVendor(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "trip_id", Msg: "must be a positive integer", Err: err})
		return
	}

	var payload vendorUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "vendor_id", Msg: "invalid payload", Err: err})
		return
	}

	out, err := tripService(c).UpdateVendor(c.Request.Context(), id, payload.VendorID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// intQuery parses an optional integer query parameter. An unparsable value
// is rejected before any store call.
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: name, Msg: "must be an integer", Err: err})
		return 0, false
	}
	return v, true
}

func int64Query(c *gin.Context, name string, def int64) (int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: name, Msg: "must be an integer", Err: err})
		return 0, false
	}
	return v, true
}

func boolQuery(c *gin.Context, name string, def bool) (bool, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: name, Msg: "must be a boolean", Err: err})
		return false, false
	}
	return v, true
}
