package campus

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(c *Catalog) *Handler {
	return &Handler{catalog: c}
}

// ListBuildings godoc
// @Summary Campus buildings
// @Description Buildings with their rooms per floor, for the booking form dropdowns
// @Tags Campus
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /campus/buildings [get]
func (h *Handler) ListBuildings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.catalog.Buildings()})
}
