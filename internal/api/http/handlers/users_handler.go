package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/trattoria-labs/restaurant-service/internal/api/dto"
	"github.com/trattoria-labs/restaurant-service/internal/service"
	apperrors "github.com/trattoria-labs/restaurant-service/pkg/util"
)

// UsersHandler exposes sign-up, sign-in and the user directory.
type UsersHandler struct {
	auth  *service.AuthService
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, userService *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, users: userService}
}

// SignUp handles POST /users/signup.
func (h *UsersHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid payload.")
	}

	user, err := h.auth.SignUp(c.UserContext(), req.Name, req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.SignUpResponse{
		Message: "User created successfully.",
		Result:  user,
	})
}

// SignIn handles POST /users/signin. Every failure, including an unreadable
// body, is a 401.
func (h *UsersHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewAuthenticationFailed(err)
	}

	result, err := h.auth.SignIn(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.SignInResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		ID:        result.UserID,
	})
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// Get handles GET /users/user/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// SearchByName handles GET /users/user/name/:name.
func (h *UsersHandler) SearchByName(c *fiber.Ctx) error {
	users, err := h.users.SearchByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// Update handles PUT /users/edit/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("Invalid payload.")
	}

	user, err := h.users.Update(c.UserContext(), c.Params("id"), service.UserChanges{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Delete handles DELETE /users/delete/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	user, err := h.users.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}
