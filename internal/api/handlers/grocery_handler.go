package handlers

import (
	"Recipe-Grocery-Backend/domain"
	"Recipe-Grocery-Backend/internal/api/presenters"
	"Recipe-Grocery-Backend/pkg/grocery"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	GroceryHandler interface {
		GetList(c *fiber.Ctx) error
		GetGroupedList(c *fiber.Ctx) error
		GetCount(c *fiber.Ctx) error
		AddRecipe(c *fiber.Ctx) error
		RemoveRecipe(c *fiber.Ctx) error
		UpdateItem(c *fiber.Ctx) error
		SetAmazonFreshURL(c *fiber.Ctx) error
		RemoveItem(c *fiber.Ctx) error
		ClearAll(c *fiber.Ctx) error
		ExportList(c *fiber.Ctx) error
		DeleteExport(c *fiber.Ctx) error
		EmailList(c *fiber.Ctx) error
	}

	groceryHandler struct {
		groceryService grocery.GroceryService
		validator      *validator.Validate
	}
)

func NewGroceryHandler(groceryService grocery.GroceryService, validator *validator.Validate) GroceryHandler {
	return &groceryHandler{
		groceryService: groceryService,
		validator:      validator,
	}
}

func (h *groceryHandler) GetList(c *fiber.Ctx) error {
	res, err := h.groceryService.GetList(c.Context(), currentUserID(c), c.QueryBool("include_checked", false))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetGroceryList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGroceryList)
}

func (h *groceryHandler) GetGroupedList(c *fiber.Ctx) error {
	res, err := h.groceryService.GetGroupedList(c.Context(), currentUserID(c), c.QueryBool("include_checked", false))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetGroceryList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGroceryList)
}

func (h *groceryHandler) GetCount(c *fiber.Ctx) error {
	res, err := h.groceryService.GetCount(c.Context(), currentUserID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetGroceryCount, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetGroceryCount)
}

func (h *groceryHandler) AddRecipe(c *fiber.Ctx) error {
	req := new(domain.AddRecipeToGroceryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddRecipeToGrocery, err)
	}

	res, err := h.groceryService.AddFromRecipe(c.Context(), *req, currentUserID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedAddRecipeToGrocery, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAddRecipeToGrocery)
}

func (h *groceryHandler) RemoveRecipe(c *fiber.Ctx) error {
	req := new(domain.RemoveRecipeSourceRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRemoveRecipeSource, err)
	}

	res, err := h.groceryService.RemoveRecipeSource(c.Context(), *req, currentUserID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedRemoveRecipeSource, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRemoveRecipeSource)
}

func (h *groceryHandler) UpdateItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	req := new(domain.UpdateGroceryItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateGroceryItem, err)
	}

	res, err := h.groceryService.UpdateItem(c.Context(), itemID, *req, currentUserID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedUpdateGroceryItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateGroceryItem)
}

func (h *groceryHandler) SetAmazonFreshURL(c *fiber.Ctx) error {
	itemID := c.Params("id")
	req := new(domain.SetAmazonFreshURLRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetAmazonFreshURL, err)
	}

	res, err := h.groceryService.SetAmazonFreshURL(c.Context(), itemID, *req, currentUserID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedSetAmazonFreshURL, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSetAmazonFreshURL)
}

func (h *groceryHandler) RemoveItem(c *fiber.Ctx) error {
	if err := h.groceryService.RemoveItem(c.Context(), c.Params("id"), currentUserID(c)); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDeleteGroceryItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteGroceryItem)
}

func (h *groceryHandler) ClearAll(c *fiber.Ctx) error {
	res, err := h.groceryService.ClearAll(c.Context(), currentUserID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedClearGroceryList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessClearGroceryList)
}

func (h *groceryHandler) ExportList(c *fiber.Ctx) error {
	res, err := h.groceryService.ExportList(c.Context(), currentUserID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedExportGroceryList, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessExportGroceryList)
}

func (h *groceryHandler) DeleteExport(c *fiber.Ctx) error {
	req := new(domain.DeleteExportRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteExport, err)
	}

	if err := h.groceryService.DeleteExport(c.Context(), *req, currentUserID(c)); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDeleteExport, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteExport)
}

func (h *groceryHandler) EmailList(c *fiber.Ctx) error {
	req := new(domain.EmailGroceryListRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEmailGroceryList, err)
	}

	if err := h.groceryService.EmailList(c.Context(), *req, currentUserID(c)); err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedEmailGroceryList, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessEmailGroceryList)
}
