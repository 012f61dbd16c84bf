package controller

import (
	"strconv"

	"sportsfest/app_error"
	"sportsfest/repository"
	"sportsfest/service"
	"sportsfest/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InventoryController struct {
	inventoryService *service.InventoryService
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{
		inventoryService: service.NewInventoryService(db),
	}
}

func setupInventoryController(db *gorm.DB) []RouteInfo {
	e := NewInventoryController(db)
	basePath := "/inventory/items"
	inventoryRoles := []string{repository.RoleInventoryAdmin, repository.RoleAdmin}
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getItemsHandler(), Authenticated: true, RequiredRoles: inventoryRoles},
		{Method: "POST", Path: "", HandlerFunc: e.createItemHandler(), Authenticated: true, RequiredRoles: inventoryRoles},
		{Method: "PUT", Path: "/:item_id", HandlerFunc: e.updateItemHandler(), Authenticated: true, RequiredRoles: inventoryRoles},
		{Method: "DELETE", Path: "/:item_id", HandlerFunc: e.deleteItemHandler(), Authenticated: true, RequiredRoles: inventoryRoles},
		{Method: "GET", Path: "/:item_id/movements", HandlerFunc: e.getItemMovementsHandler(), Authenticated: true, RequiredRoles: inventoryRoles},
	}
	for i, route := range routes {
		routes[i].Path = basePath + route.Path
	}
	routes = append(routes, RouteInfo{
		Method: "GET", Path: "/inventory/movements", HandlerFunc: e.getMovementsHandler(),
		Authenticated: true, RequiredRoles: inventoryRoles,
	})
	return routes
}

// @Description Lists inventory items with derived availability
// @Tags inventory
// @Produce json
// @Success 200 {array} InventoryItemResponse
// @Router /inventory/items [get]
func (e *InventoryController) getItemsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := e.inventoryService.GetItems()
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(items, toInventoryItemResponse))
	}
}

// @Description Creates an inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Param item body InventoryItemCreate true "Item to create"
// @Success 201 {object} InventoryItemResponse
// @Router /inventory/items [post]
func (e *InventoryController) createItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request InventoryItemCreate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		item, err := e.inventoryService.CreateItem(request.toModel())
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(201, toInventoryItemResponse(&service.ItemWithAvailability{Item: item, Available: item.Quantity}))
	}
}

// @Description Updates an inventory item; quantity changes leave a movement record
// @Tags inventory
// @Accept json
// @Produce json
// @Param itemId path int true "Item ID"
// @Param item body InventoryItemUpdate true "Fields to update"
// @Success 200 {object} InventoryItemResponse
// @Router /inventory/items/{itemId} [put]
func (e *InventoryController) updateItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemId, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request InventoryItemUpdate
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		item, err := e.inventoryService.UpdateItem(itemId, request.toModel(), request.Reason, actorFromContext(c))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Item not found"})
			} else {
				app_error.WithHTTPStatus(c, err)
			}
			return
		}
		withAvailability, err := e.inventoryService.GetItem(item.Id)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, toInventoryItemResponse(withAvailability))
	}
}

// @Description Deletes an item without active loans
// @Tags inventory
// @Param itemId path int true "Item ID"
// @Success 204
// @Router /inventory/items/{itemId} [delete]
func (e *InventoryController) deleteItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemId, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		err = e.inventoryService.DeleteItem(itemId)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(404, gin.H{"error": "Item not found"})
			} else {
				app_error.WithHTTPStatus(c, err)
			}
			return
		}
		c.JSON(204, nil)
	}
}

// @Description Lists the movement audit log for one item
// @Tags inventory
// @Produce json
// @Param itemId path int true "Item ID"
// @Success 200 {array} MovementResponse
// @Router /inventory/items/{itemId}/movements [get]
func (e *InventoryController) getItemMovementsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		itemId, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		movements, err := e.inventoryService.GetMovements(itemId)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(movements, toMovementResponse))
	}
}

// @Description Lists the whole movement audit log
// @Tags inventory
// @Produce json
// @Success 200 {array} MovementResponse
// @Router /inventory/movements [get]
func (e *InventoryController) getMovementsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		movements, err := e.inventoryService.GetMovements(0)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.JSON(200, utils.Map(movements, toMovementResponse))
	}
}

type InventoryItemCreate struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
	MinQuantity int    `json:"min_quantity"`
	Location    string `json:"location"`
}

func (i *InventoryItemCreate) toModel() *repository.InventoryItem {
	return &repository.InventoryItem{
		Name:        i.Name,
		Category:    i.Category,
		Quantity:    i.Quantity,
		Unit:        i.Unit,
		MinQuantity: i.MinQuantity,
		Location:    i.Location,
		IsActive:    true,
	}
}

type InventoryItemUpdate struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
	MinQuantity int    `json:"min_quantity"`
	Location    string `json:"location"`
	IsActive    bool   `json:"is_active"`
	Reason      string `json:"reason"`
}

func (i *InventoryItemUpdate) toModel() *repository.InventoryItem {
	return &repository.InventoryItem{
		Name:        i.Name,
		Category:    i.Category,
		Quantity:    i.Quantity,
		Unit:        i.Unit,
		MinQuantity: i.MinQuantity,
		Location:    i.Location,
		IsActive:    i.IsActive,
	}
}

type InventoryItemResponse struct {
	Id          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Available   int    `json:"available"`
	Unit        string `json:"unit"`
	MinQuantity int    `json:"min_quantity"`
	LowStock    bool   `json:"low_stock"`
	Location    string `json:"location"`
	IsActive    bool   `json:"is_active"`
}

func toInventoryItemResponse(item *service.ItemWithAvailability) InventoryItemResponse {
	return InventoryItemResponse{
		Id:          item.Item.Id,
		Name:        item.Item.Name,
		Category:    item.Item.Category,
		Quantity:    item.Item.Quantity,
		Available:   item.Available,
		Unit:        item.Item.Unit,
		MinQuantity: item.Item.MinQuantity,
		LowStock:    item.Item.LowStock(),
		Location:    item.Item.Location,
		IsActive:    item.Item.IsActive,
	}
}

type MovementResponse struct {
	Id               int    `json:"id"`
	ItemId           int    `json:"item_id"`
	Type             string `json:"type"`
	Quantity         int    `json:"quantity"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
	Reason           string `json:"reason"`
	Actor            string `json:"actor"`
	CreatedAt        string `json:"created_at"`
}

func toMovementResponse(movement *repository.InventoryMovement) MovementResponse {
	return MovementResponse{
		Id:               movement.Id,
		ItemId:           movement.ItemId,
		Type:             movement.Type,
		Quantity:         movement.Quantity,
		PreviousQuantity: movement.PreviousQuantity,
		NewQuantity:      movement.NewQuantity,
		Reason:           movement.Reason,
		Actor:            movement.Actor,
		CreatedAt:        movement.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
