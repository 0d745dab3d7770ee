package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/trattoria-labs/restaurant-service/internal/api/dto"
	"github.com/trattoria-labs/restaurant-service/internal/domain"
	"github.com/trattoria-labs/restaurant-service/internal/service"
	apperrors "github.com/trattoria-labs/restaurant-service/pkg/util"
)

// ProductsHandler exposes the product catalog.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// Get handles GET /products/product/id/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// SearchByName handles GET /products/product/:name.
func (h *ProductsHandler) SearchByName(c *fiber.Ctx) error {
	products, err := h.products.SearchByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// Create handles POST /products/create.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid payload.")
	}

	product, err := h.products.Create(c.UserContext(), toProductPatch(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(product)
}

// Update handles PUT /products/edit/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid payload.")
	}

	product, err := h.products.Update(c.UserContext(), c.Params("id"), toProductPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// Delete handles DELETE /products/delete/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	product, err := h.products.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func toProductPatch(req dto.ProductRequest) domain.ProductPatch {
	return domain.ProductPatch{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Ingredients: req.Ingredients,
		Image:       req.Image,
		Video:       req.Video,
		Vegetarian:  req.Vegetarian,
		DateAdded:   req.DateAdded,
	}
}
