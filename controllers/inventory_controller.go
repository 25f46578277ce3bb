package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rleomotos-api/services"
)

type InventoryController struct {
	inventory *services.InventoryService
}

func NewInventoryController(inventory *services.InventoryService) *InventoryController {
	return &InventoryController{inventory: inventory}
}

func (ic *InventoryController) Summary(c *gin.Context) {
	summary, err := ic.inventory.Summary()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (ic *InventoryController) Missing(c *gin.Context) {
	motorcycles, err := ic.inventory.FindWithMissingData()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, motorcycles)
}
