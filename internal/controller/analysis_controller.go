package controller

import (
	"growth-engine-be/internal/dto"
	"growth-engine-be/internal/entity"
	"growth-engine-be/internal/pkg/serverutils"
	"growth-engine-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	Complete(ctx *fiber.Ctx) error
	Index(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Latest(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Archived(ctx *fiber.Ctx) error
	Evict(ctx *fiber.Ctx) error
}

type analysisController struct {
	service service.IAnalysisService
}

func NewAnalysisController(service service.IAnalysisService) IAnalysisController {
	return &analysisController{service: service}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analysis/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/start", c.Start)
	h.Post("/chat", c.Chat)
	h.Post("/complete", c.Complete)
	h.Get("", c.Index)
	h.Get("/latest/:studentId", c.Latest)
	h.Get("/archived/:studentId", c.Archived)
	h.Get("/:id", c.Show)
	h.Delete("/:id", c.Delete)
	// Eviction is triggered by an operator or the sweeper binary, never by
	// an internal timer.
	h.Post("/evict", serverutils.RequireRole(string(entity.UserRoleAdmin)), c.Evict)
}

func userIdFromToken(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, serverutils.NewUnauthorized("Invalid token subject")
	}
	return userId, nil
}

func (c *analysisController) Start(ctx *fiber.Ctx) error {
	userId, err := userIdFromToken(ctx)
	if err != nil {
		return err
	}

	var req dto.StartConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.StartConversation(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Conversation started", res))
}

func (c *analysisController) Chat(ctx *fiber.Ctx) error {
	userId, err := userIdFromToken(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *analysisController) Complete(ctx *fiber.Ctx) error {
	userId, err := userIdFromToken(ctx)
	if err != nil {
		return err
	}

	var req dto.CompleteAnalysisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CompleteAnalysis(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Analysis completed", res))
}

// Index lists analyses, optionally filtered by ?student_id=.
func (c *analysisController) Index(ctx *fiber.Ctx) error {
	res := c.service.GetAnalyses(ctx.Query("student_id"))
	return ctx.JSON(serverutils.SuccessResponse("Success get analyses", res))
}

func (c *analysisController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.GetAnalysisById(ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show analysis", res))
}

func (c *analysisController) Latest(ctx *fiber.Ctx) error {
	res, err := c.service.GetLatestAnalysisByStudent(ctx.Params("studentId"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get latest analysis", res))
}

func (c *analysisController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.DeleteAnalysis(ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete analysis", nil))
}

func (c *analysisController) Archived(ctx *fiber.Ctx) error {
	studentId, err := uuid.Parse(ctx.Params("studentId"))
	if err != nil {
		return serverutils.NewBadRequest("Invalid student id")
	}

	res, err := c.service.GetArchivedByStudent(ctx.Context(), studentId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get archived analyses", res))
}

func (c *analysisController) Evict(ctx *fiber.Ctx) error {
	evicted := c.service.EvictStaleConversations()
	return ctx.JSON(serverutils.SuccessResponse("Eviction complete", dto.EvictConversationsResponse{Evicted: evicted}))
}
