package handlers

import (
	"net/http"
	"time"

	intconfig "tripapi/internal/config"
	intdb "tripapi/internal/db"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().Unix()})
}

// DBCheck reports connectivity and whether the trips table is reachable.
// Schema creation belongs to the ingestion side; this only observes it.
func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not connected"})
		return
	}
	if err := intconfig.EnsureDB(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database ping failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "database connection OK",
		"trips_table": intdb.TableExists(intconfig.DB, "trips"),
	})
}
