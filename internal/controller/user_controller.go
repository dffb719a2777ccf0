package controller

import (
	"growth-engine-be/internal/dto"
	"growth-engine-be/internal/entity"
	"growth-engine-be/internal/pkg/serverutils"
	"growth-engine-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Profile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	Deactivate(ctx *fiber.Ctx) error
	SchoolUsers(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
}

func NewUserController(service service.IUserService) IUserController {
	return &userController{service: service}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/profile", c.Profile)
	h.Put("/profile", c.UpdateProfile)
	h.Delete("/account", c.Deactivate)
	h.Get("/school", serverutils.RequireRole(string(entity.UserRolePrincipal), string(entity.UserRoleAdmin)), c.SchoolUsers)
}

func (c *userController) Profile(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return serverutils.NewUnauthorized("Invalid token subject")
	}

	res, err := c.service.GetProfile(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return serverutils.NewUnauthorized("Invalid token subject")
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateProfile(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update profile", res))
}

func (c *userController) Deactivate(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return serverutils.NewUnauthorized("Invalid token subject")
	}

	if err := c.service.DeactivateAccount(ctx.Context(), userId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Account deactivated", nil))
}

// SchoolUsers lists the active staff of the caller's school.
func (c *userController) SchoolUsers(ctx *fiber.Ctx) error {
	schoolIdStr, _ := ctx.Locals("school_id").(string)
	schoolId, err := uuid.Parse(schoolIdStr)
	if err != nil {
		return serverutils.NewBadRequest("Account is not attached to a school")
	}

	res, err := c.service.GetSchoolUsers(ctx.Context(), schoolId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get school users", res))
}
