package controller

import (
	"growth-engine-be/internal/dto"
	"growth-engine-be/internal/pkg/serverutils"
	"growth-engine-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IStudentController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Index(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type studentController struct {
	service service.IStudentService
}

func NewStudentController(service service.IStudentService) IStudentController {
	return &studentController{service: service}
}

func (c *studentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/student/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.Index)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func schoolIdFromToken(ctx *fiber.Ctx) (uuid.UUID, error) {
	schoolIdStr, _ := ctx.Locals("school_id").(string)
	schoolId, err := uuid.Parse(schoolIdStr)
	if err != nil {
		return uuid.Nil, serverutils.NewBadRequest("Account is not attached to a school")
	}
	return schoolId, nil
}

func (c *studentController) Create(ctx *fiber.Ctx) error {
	schoolId, err := schoolIdFromToken(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateStudentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateStudent(ctx.Context(), schoolId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create student", res))
}

func (c *studentController) Index(ctx *fiber.Ctx) error {
	schoolId, err := schoolIdFromToken(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetStudents(ctx.Context(), schoolId, ctx.Query("class_name"), ctx.Query("grade_level"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get students", res))
}

func (c *studentController) Show(ctx *fiber.Ctx) error {
	schoolId, err := schoolIdFromToken(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("Invalid student id")
	}

	res, err := c.service.GetStudent(ctx.Context(), schoolId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show student", res))
}

func (c *studentController) Update(ctx *fiber.Ctx) error {
	schoolId, err := schoolIdFromToken(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("Invalid student id")
	}

	var req dto.UpdateStudentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateStudent(ctx.Context(), schoolId, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update student", res))
}

func (c *studentController) Delete(ctx *fiber.Ctx) error {
	schoolId, err := schoolIdFromToken(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("Invalid student id")
	}

	if err := c.service.DeleteStudent(ctx.Context(), schoolId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete student", nil))
}
