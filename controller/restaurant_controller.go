package controller

import (
	"net/http"

	"dinein/service"
	"dinein/utils"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	restaurants *service.RestaurantService
	menu        *service.MenuService
}

func NewRestaurantController(restaurants *service.RestaurantService, menu *service.MenuService) *RestaurantController {
	return &RestaurantController{restaurants: restaurants, menu: menu}
}

func (ctrl *RestaurantController) List(c *gin.Context) {
	list, err := ctrl.restaurants.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched restaurants successfully", list)
}

func (ctrl *RestaurantController) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	r, err := ctrl.restaurants.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched restaurant successfully", r)
}

// Mine lists the restaurants owned by the authenticated user.
func (ctrl *RestaurantController) Mine(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	list, err := ctrl.restaurants.ListByUser(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched restaurants successfully", list)
}

// Menu returns the restaurant's enabled categories with their items.
func (ctrl *RestaurantController) Menu(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cats, err := ctrl.menu.CategoriesWithItems(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched menu successfully", cats)
}

func (ctrl *RestaurantController) Create(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	var req service.RestaurantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	r, err := ctrl.restaurants.Create(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusCreated, "Restaurant created successfully", r)
}

func (ctrl *RestaurantController) Update(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.RestaurantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	r, err := ctrl.restaurants.Update(c.Request.Context(), user, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Restaurant updated successfully", r)
}

type updateLocationsRequest struct {
	Locations []service.LocationInput `json:"locations" binding:"required,min=1,dive"`
}

// UpdateLocations handles PUT /api/restaurants/:id/locations. Every entry
// needs an id; only the listed locations change.
func (ctrl *RestaurantController) UpdateLocations(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateLocationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	for _, l := range req.Locations {
		if l.ID == 0 {
			invalidField(c, "locations.id", "is required")
			return
		}
	}

	locs, err := ctrl.restaurants.UpdateLocations(c.Request.Context(), user, id, req.Locations)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Locations updated successfully", locs)
}

func (ctrl *RestaurantController) Delete(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.restaurants.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Restaurant deleted successfully", gin.H{"restaurant_id": id})
}

// UploadLogo and UploadCover store the "image" form file and return its
// public relative path.
func (ctrl *RestaurantController) UploadLogo(c *gin.Context) {
	ctrl.uploadMedia(c, service.MediaLogo)
}

func (ctrl *RestaurantController) UploadCover(c *gin.Context) {
	ctrl.uploadMedia(c, service.MediaCover)
}

func (ctrl *RestaurantController) uploadMedia(c *gin.Context, kind service.MediaKind) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		invalidField(c, "image", "is required")
		return
	}
	rel, err := ctrl.restaurants.SetMedia(c.Request.Context(), user, id, kind, file)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Image uploaded successfully", rel)
}

func (ctrl *RestaurantController) AddImage(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		invalidField(c, "image", "is required")
		return
	}
	img, err := ctrl.restaurants.AddImage(c.Request.Context(), user, id, file)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusCreated, "Image uploaded successfully", img.Image)
}

func (ctrl *RestaurantController) CreateTable(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.TableInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	t, err := ctrl.restaurants.CreateTable(c.Request.Context(), user, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusCreated, "Table created successfully", t)
}

func (ctrl *RestaurantController) ListTables(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tables, err := ctrl.restaurants.ListTables(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched tables successfully", tables)
}
