package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome reports that the service is up.
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Property Management Ledger API v1"})
}
