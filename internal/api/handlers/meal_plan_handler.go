package handlers

import (
	"Recipe-Grocery-Backend/domain"
	"Recipe-Grocery-Backend/internal/api/presenters"
	"Recipe-Grocery-Backend/pkg/mealplan"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MealPlanHandler interface {
		AddEntry(c *fiber.Ctx) error
		ListEntries(c *fiber.Ctx) error
		RemoveEntry(c *fiber.Ctx) error
	}

	mealPlanHandler struct {
		mealPlanService mealplan.MealPlanService
		validator       *validator.Validate
	}
)

func NewMealPlanHandler(mealPlanService mealplan.MealPlanService, validator *validator.Validate) MealPlanHandler {
	return &mealPlanHandler{
		mealPlanService: mealPlanService,
		validator:       validator,
	}
}

func (h *mealPlanHandler) AddEntry(c *fiber.Ctx) error {
	req := new(domain.AddMealPlanEntryRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddMealPlanEntry, err)
	}

	res, err := h.mealPlanService.AddEntry(c.Context(), *req, currentUserID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedAddMealPlanEntry, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddMealPlanEntry)
}

func (h *mealPlanHandler) ListEntries(c *fiber.Ctx) error {
	res, err := h.mealPlanService.ListEntries(c.Context(), c.Query("from"), c.Query("to"), currentUserID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedGetMealPlan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMealPlan)
}

func (h *mealPlanHandler) RemoveEntry(c *fiber.Ctx) error {
	res, err := h.mealPlanService.RemoveEntry(c.Context(), c.Params("id"), currentUserID(c))
	if err != nil {
		return presenters.ServiceErrorResponse(c, domain.MessageFailedDeleteMealPlanEntry, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteMealPlanEntry)
}
