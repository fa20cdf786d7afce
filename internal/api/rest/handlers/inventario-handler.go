package handlers

import (
	"encoding/json"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/soporteti/inventario_service/internal/api/rest/middleware"
	"github.com/soporteti/inventario_service/internal/domain"
	"github.com/soporteti/inventario_service/internal/dto"
	"github.com/soporteti/inventario_service/internal/helper"
	"github.com/soporteti/inventario_service/internal/helper/utils"
	"github.com/soporteti/inventario_service/internal/services"
)

type InventarioHandler struct {
	svc      services.InventarioService
	catalogo services.CatalogoService
	hist     services.HistorialService
	auth     helper.Auth
}

func NewInventarioHandler(
	svc services.InventarioService,
	catalogo services.CatalogoService,
	hist services.HistorialService,
	auth helper.Auth,
) *InventarioHandler {
	return &InventarioHandler{svc: svc, catalogo: catalogo, hist: hist, auth: auth}
}

func (h *InventarioHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	inv := api.Group("/inventario", middleware.AuthMiddleware(h.auth))
	inv.Get("/", h.List)
	inv.Get("/categorias", h.Categorias)
	inv.Get("/:id", h.Get)
	inv.Post("/", h.Create)
	inv.Put("/:id", h.Update)
	inv.Delete("/:id", h.Delete)
}

// GET /api/inventario?q=&categoria=
func (h *InventarioHandler) List(ctx *fiber.Ctx) error {
	items, err := h.svc.List(ctx.Context())
	if err != nil {
		return responderError(ctx, err)
	}

	q := ctx.Query("q")
	categoria := ctx.Query("categoria")
	if q != "" || categoria != "" {
		items = h.catalogo.Filtrar(items, q, categoria)
	}

	return ctx.JSON(dto.ListResponse{Count: len(items), Data: items})
}

func (h *InventarioHandler) Categorias(ctx *fiber.Ctx) error {
	categorias, err := h.catalogo.Categorias()
	if err != nil {
		return responderError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, categorias)
}

// GET /api/inventario/:id — histories come back newest first for display;
// the stored order is untouched.
func (h *InventarioHandler) Get(ctx *fiber.Ctx) error {
	inv, err := h.svc.Get(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return responderError(ctx, err)
	}

	vista := *inv
	vista.Estado = domain.EstadoDisplay(inv.Estado)
	vista.HistorialResp = h.hist.OrdenarResp(inv.HistorialResp)
	vista.HistorialCambio = h.hist.OrdenarCambios(inv.HistorialCambio)

	return utils.ResponseSuccess(ctx, fiber.StatusOK, vista)
}

func (h *InventarioHandler) Create(ctx *fiber.Ctx) error {
	input, file, err := h.parseInput(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "entrada no válida")
	}

	actor, _ := h.auth.GetCurrentUser(ctx)

	inv, err := h.svc.Create(ctx.Context(), actor.Email, input, file)
	if err != nil {
		return responderError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, inv)
}

func (h *InventarioHandler) Update(ctx *fiber.Ctx) error {
	input, file, err := h.parseInput(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "entrada no válida")
	}

	actor, _ := h.auth.GetCurrentUser(ctx)

	inv, err := h.svc.Update(ctx.Context(), actor.Email, ctx.Params("id"), input, file)
	if err != nil {
		return responderError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, inv)
}

func (h *InventarioHandler) Delete(ctx *fiber.Ctx) error {
	if err := h.svc.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return responderError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{})
}

// parseInput handles both JSON bodies and multipart forms. In multipart
// requests the drafts travel as JSON-encoded form fields ("responsable",
// "cambio") and the optional image as the "imagen" file part.
func (h *InventarioHandler) parseInput(ctx *fiber.Ctx) (dto.InventarioInput, *multipart.FileHeader, error) {
	var input dto.InventarioInput

	if err := ctx.BodyParser(&input); err != nil {
		return input, nil, err
	}

	if strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if raw := ctx.FormValue("responsable"); raw != "" {
			var draft dto.ResponsableDraft
			if err := json.Unmarshal([]byte(raw), &draft); err == nil {
				input.Responsable = &draft
			}
		}
		if raw := ctx.FormValue("cambio"); raw != "" {
			var draft dto.CambioDraft
			if err := json.Unmarshal([]byte(raw), &draft); err == nil {
				input.Cambio = &draft
			}
		}

		if file, err := ctx.FormFile("imagen"); err == nil {
			return input, file, nil
		}
	}

	return input, nil, nil
}

func responderError(ctx *fiber.Ctx, err error) error {
	switch {
	case domain.IsValidation(err):
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		return utils.ResponseError(ctx, fiber.StatusNotFound, err.Error())
	case domain.IsAssetStore(err):
		return utils.ResponseError(ctx, fiber.StatusBadGateway, err.Error())
	default:
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
}
