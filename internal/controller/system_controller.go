package controller

import (
	"ai-docqa-be/internal/pkg/serverutils"
	"ai-docqa-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const workflowDiagram = `
Question
   |
   v
[1/4] Research   - retrieve relevant chunks
   |
   v
[2/4] Synthesis  - draft an answer from the chunks
   |
   v
[3/4] Critique   - review the draft for gaps
   |
   +-- no gaps --> answer
   |
   v
[4/4] Editing    - rewrite using the critique
   |
   v
 answer
`

type ISystemController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	WorkflowDiagram(ctx *fiber.Ctx) error
}

type systemController struct {
	statsService service.IStatsService
}

func NewSystemController(statsService service.IStatsService) ISystemController {
	return &systemController{
		statsService: statsService,
	}
}

func (c *systemController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Get("/stats", c.Stats)
	r.Get("/workflow/diagram", c.WorkflowDiagram)
}

func (c *systemController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("ok", fiber.Map{"status": "healthy"}))
}

func (c *systemController) Stats(ctx *fiber.Ctx) error {
	res, err := c.statsService.Snapshot(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show stats", res))
}

func (c *systemController) WorkflowDiagram(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Workflow diagram", fiber.Map{"diagram": workflowDiagram}))
}
