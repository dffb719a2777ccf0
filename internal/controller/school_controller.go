package controller

import (
	"growth-engine-be/internal/dto"
	"growth-engine-be/internal/entity"
	"growth-engine-be/internal/pkg/serverutils"
	"growth-engine-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISchoolController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Index(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type schoolController struct {
	service service.ISchoolService
}

func NewSchoolController(service service.ISchoolService) ISchoolController {
	return &schoolController{service: service}
}

// School management is platform-admin territory.
func (c *schoolController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/school/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole(string(entity.UserRoleAdmin)))
	h.Post("", c.Create)
	h.Get("", c.Index)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *schoolController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSchoolRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateSchool(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create school", res))
}

func (c *schoolController) Index(ctx *fiber.Ctx) error {
	res, err := c.service.GetSchools(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get schools", res))
}

func (c *schoolController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("Invalid school id")
	}

	res, err := c.service.GetSchool(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show school", res))
}

func (c *schoolController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("Invalid school id")
	}

	var req dto.UpdateSchoolRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateSchool(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update school", res))
}

func (c *schoolController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("Invalid school id")
	}

	if err := c.service.DeleteSchool(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete school", nil))
}
