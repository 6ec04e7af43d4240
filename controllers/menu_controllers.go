package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Xfhreall/armaso-pos/models"
	"github.com/Xfhreall/armaso-pos/services"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Menus *services.MenuService
}

func NewMenuController(menus *services.MenuService) *MenuController {
	return &MenuController{Menus: menus}
}

type menuRequest struct {
	Name     string              `json:"name" binding:"required"`
	Price    int64               `json:"price"`
	Category models.MenuCategory `json:"category" binding:"required"`
}

func (r menuRequest) input() services.MenuInput {
	return services.MenuInput{Name: r.Name, Price: r.Price, Category: r.Category}
}

// GetAllMenus
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	menus, err := mc.Menus.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetActiveMenus lists what the cashier can sell.
func (mc *MenuController) GetActiveMenus(c *gin.Context) {
	menus, err := mc.Menus.ListActive(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of active menus", menus)
}

func (mc *MenuController) GetMenusByCategory(c *gin.Context) {
	category := models.MenuCategory(strings.ToUpper(c.Param("category")))
	if !category.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category"))
		return
	}
	menus, err := mc.Menus.ListByCategory(c.Request.Context(), category)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus in "+category.Label(), menus)
}

func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	menu, err := mc.Menus.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req menuRequest
	if !bindJSON(c, &req) {
		return
	}
	menu, err := mc.Menus.Create(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req menuRequest
	if !bindJSON(c, &req) {
		return
	}
	menu, err := mc.Menus.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := mc.Menus.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", nil)
}

// ToggleMenuActive sets whether the item is sellable.
func (mc *MenuController) ToggleMenuActive(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	menu, err := mc.Menus.SetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu availability updated", menu)
}
