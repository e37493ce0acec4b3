package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque/internal/application/dto"
	"github.com/jhoicas/estoque/internal/application/inventory"
)

// ItemHandler maneja las peticiones HTTP del Item Store.
type ItemHandler struct {
	uc     *inventory.ItemUseCase
	ledger *inventory.RegisterMovementUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *inventory.ItemUseCase, ledger *inventory.RegisterMovementUseCase) *ItemHandler {
	return &ItemHandler{uc: uc, ledger: ledger}
}

// Create godoc
// @Summary      Registrar artículo
// @Description  Crea el artículo y su movimiento init en la misma transacción.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	item, err := h.uc.CreateItemFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToItemResponse(item))
}

// List godoc
// @Summary      Listar artículos
// @Tags         items
// @Produce      json
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListItems(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToItemListResponse(list))
}

// Search godoc
// @Summary      Buscar artículos por nombre o categoría
// @Tags         items
// @Produce      json
// @Param        q    query  string  false  "Término (vacío = todos)"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items/search [get]
func (h *ItemHandler) Search(c *fiber.Ctx) error {
	list, err := h.uc.SearchItems(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToItemListResponse(list))
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         items
// @Produce      json
// @Param        id   path  int  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	item, err := h.uc.GetItem(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// UpdatePrice godoc
// @Summary      Actualizar precio unitario
// @Description  Cambia el precio del artículo; la cantidad no cambia y no se agrega movimiento.
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del artículo"
// @Param        body  body  dto.UpdatePriceRequest  true  "Precio nuevo"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [patch]
func (h *ItemHandler) UpdatePrice(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	var in dto.UpdatePriceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.UnitPrice == nil {
		return badRequest(c, "VALIDATION", "unit_price es obligatorio")
	}
	item, err := h.uc.UpdatePrice(c.UserContext(), id, *in.UnitPrice)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToItemResponse(item))
}

// Delete godoc
// @Summary      Borrar artículo
// @Description  Borra el artículo y todos sus movimientos.
// @Tags         items
// @Param        id   path  int  true  "ID del artículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	if err := h.uc.DeleteItem(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Movements godoc
// @Summary      Historial de un artículo
// @Tags         items
// @Produce      json
// @Param        id   path  int  true  "ID del artículo"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements [get]
func (h *ItemHandler) Movements(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	list, err := h.ledger.ListItemMovements(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToMovementListResponse(list))
}
