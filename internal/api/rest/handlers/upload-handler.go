package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soporteti/inventario_service/internal/domain"
	"github.com/soporteti/inventario_service/internal/helper/utils"
	"github.com/soporteti/inventario_service/internal/services"
)

// UploadHandler exposes the blob store directly: clients that manage the
// form flow themselves upload first and attach the returned handles to the
// record afterwards.
type UploadHandler struct {
	assets services.AssetService
}

func NewUploadHandler(assets services.AssetService) *UploadHandler {
	return &UploadHandler{assets: assets}
}

func (h *UploadHandler) SetupRoutes(api fiber.Router) {
	api.Post("/uploads/imagen", h.UploadImagen)
}

// POST /api/uploads/imagen
// form-data: imagen=<image>
func (h *UploadHandler) UploadImagen(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("imagen")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "imagen es obligatoria")
	}

	img, err := h.assets.Subir(ctx.Context(), file)
	if err != nil {
		if domain.IsValidation(err) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
		}
		return utils.ResponseError(ctx, fiber.StatusBadGateway, err.Error())
	}

	return ctx.JSON(img)
}
