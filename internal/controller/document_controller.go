package controller

import (
	"io"

	"ai-docqa-be/internal/pkg/serverutils"
	"ai-docqa-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	UploadV2(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	r.Post("/upload", c.Upload)
	r.Post("/upload-v2", c.UploadV2)
	r.Get("/documents", c.List)
	r.Delete("/documents/:id", c.Delete)
	r.Get("/documents/:id/stats", c.Stats)
}

func readUpload(ctx *fiber.Ctx) (string, []byte, error) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fileHeader.Filename, content, nil
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	filename, content, err := readUpload(ctx)
	if err != nil {
		return err
	}

	source := ctx.FormValue("source")
	res, err := c.documentService.UploadShared(ctx.Context(), filename, content, source)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Document added to index", res))
}

func (c *documentController) UploadV2(ctx *fiber.Ctx) error {
	filename, content, err := readUpload(ctx)
	if err != nil {
		return err
	}

	docID := ctx.FormValue("doc_id")
	res, err := c.documentService.UploadDocument(ctx.Context(), filename, content, docID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Document indexed", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	res, err := c.documentService.ListDocuments(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	docID := ctx.Params("id")

	deleted, err := c.documentService.DeleteDocument(ctx.Context(), docID)
	if err != nil {
		return err
	}
	if !deleted {
		return fiber.NewError(fiber.StatusNotFound, "document not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Document deleted", fiber.Map{"doc_id": docID}))
}

func (c *documentController) Stats(ctx *fiber.Ctx) error {
	docID := ctx.Params("id")

	res, err := c.documentService.GetDocumentStats(ctx.Context(), docID)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "document not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document stats", res))
}
