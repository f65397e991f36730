package controller

import (
	"net/http"

	"dinein/service"
	"dinein/utils"

	"github.com/gin-gonic/gin"
)

type GeographyController struct {
	geo *service.GeographyService
}

func NewGeographyController(geo *service.GeographyService) *GeographyController {
	return &GeographyController{geo: geo}
}

func (ctrl *GeographyController) Countries(c *gin.Context) {
	list, err := ctrl.geo.Countries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched countries successfully", list)
}

func (ctrl *GeographyController) Governorates(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := ctrl.geo.Governorates(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched governorates successfully", list)
}

func (ctrl *GeographyController) Cities(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := ctrl.geo.Cities(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched cities successfully", list)
}
