package controller

import (
	"mime/multipart"
	"net/http"
	"strings"

	"dinein/service"
	"dinein/utils"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	menu *service.MenuService
}

func NewMenuController(menu *service.MenuService) *MenuController {
	return &MenuController{menu: menu}
}

// ListCategories returns enabled categories. ?include_disabled=true also
// returns disabled ones; deleted categories are never listed.
func (ctrl *MenuController) ListCategories(c *gin.Context) {
	include := c.Query("include_disabled") == "true"
	cats, err := ctrl.menu.ListCategories(c.Request.Context(), include)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched categories successfully", cats)
}

func (ctrl *MenuController) ShowCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cat, err := ctrl.menu.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched category successfully", cat)
}

func (ctrl *MenuController) CreateCategory(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	var req service.CategoryInput
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if req.RestaurantID == 0 {
		invalidField(c, "restaurant_id", "is required")
		return
	}
	cat, err := ctrl.menu.CreateCategory(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusCreated, "Category created successfully", cat)
}

func (ctrl *MenuController) UpdateCategory(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.CategoryInput
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}
	cat, err := ctrl.menu.UpdateCategory(c.Request.Context(), user, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Category updated successfully", cat)
}

// DeleteCategory marks the category Deleted.
func (ctrl *MenuController) DeleteCategory(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.menu.DeleteCategory(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Category deleted successfully", gin.H{"category_id": id})
}

func (ctrl *MenuController) ListItems(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := ctrl.menu.ListItems(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched menu items successfully", items)
}

func (ctrl *MenuController) ShowItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	it, err := ctrl.menu.GetItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Fetched menu item successfully", it)
}

func (ctrl *MenuController) CreateItem(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	var req service.ItemInput
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}
	image, ok := optionalImage(c)
	if !ok {
		return
	}
	it, err := ctrl.menu.CreateItem(c.Request.Context(), user, req, image)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusCreated, "Menu item created successfully", it)
}

func (ctrl *MenuController) UpdateItem(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.ItemInput
	if err := c.ShouldBind(&req); err != nil {
		bindFailed(c, err)
		return
	}
	image, ok := optionalImage(c)
	if !ok {
		return
	}
	it, err := ctrl.menu.UpdateItem(c.Request.Context(), user, id, req, image)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusOK, "Menu item updated successfully", it)
}

func (ctrl *MenuController) DeleteItem(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.menu.DeleteItem(c.Request.Context(), user, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportItems handles POST /api/categories/:id/items/import with an xlsx
// file in the "file" form field.
func (ctrl *MenuController) ImportItems(c *gin.Context) {
	user, ok := actor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		invalidField(c, "file", "is required")
		return
	}
	file, err := fh.Open()
	if err != nil {
		utils.SendResponse(c, http.StatusBadRequest, "Failed to read uploaded file", nil)
		return
	}
	defer file.Close()

	res, err := ctrl.menu.ImportItems(c.Request.Context(), user, id, file)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SendResponse(c, http.StatusCreated, "Menu items imported successfully", res)
}

// optionalImage returns the "image" form file when the request is multipart
// and carries one.
func optionalImage(c *gin.Context) (*multipart.FileHeader, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, true
	}
	file, err := c.FormFile("image")
	if err == nil {
		return file, true
	}
	if err == http.ErrMissingFile {
		return nil, true
	}
	utils.SendResponse(c, http.StatusBadRequest, "Failed to read uploaded file", nil)
	return nil, false
}
