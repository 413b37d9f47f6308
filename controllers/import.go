package controllers

import (
	"net/http"

	"hvactracker-backend/config"
	"hvactracker-backend/services"
	"hvactracker-backend/utils"

	"github.com/gin-gonic/gin"
)

// ImportCSV accepts a multipart CSV upload and bulk-upserts customers
// and units. Row-level problems come back inside the result; only a
// structurally unusable file is rejected outright.
func ImportCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "CSV file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := services.NewImportService(config.DB).ImportCSV(file)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithData(c, http.StatusOK, result)
}
