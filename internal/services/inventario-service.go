package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/soporteti/inventario_service/internal/domain"
	"github.com/soporteti/inventario_service/internal/dto"
	"github.com/soporteti/inventario_service/internal/helper"
	"github.com/soporteti/inventario_service/internal/interfaces"
	"github.com/soporteti/inventario_service/internal/repository"
)

// InventarioService owns the record lifecycle: field validation, the
// closed estado vocabulary, and the coupling between a record, its two
// audit trails and its image blob. There is no two-phase commit with the
// blob store; the ordering upload-new / commit-record / retire-old keeps a
// record from ever pointing at a deleted blob, at the cost of the
// occasional orphan.
type InventarioService interface {
	Create(ctx context.Context, actor string, input dto.InventarioInput, imagen *multipart.FileHeader) (*domain.Inventario, error)
	Update(ctx context.Context, actor string, id string, input dto.InventarioInput, imagen *multipart.FileHeader) (*domain.Inventario, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Inventario, error)
	List(ctx context.Context) ([]domain.Inventario, error)
}

type inventarioService struct {
	repo      repository.InventarioRepository
	historial HistorialService
	assets    AssetService
	producer  interfaces.ProducerHandler
}

func NewInventarioService(
	repo repository.InventarioRepository,
	historial HistorialService,
	assets AssetService,
	producer interfaces.ProducerHandler,
) InventarioService {
	return &inventarioService{
		repo:      repo,
		historial: historial,
		assets:    assets,
		producer:  producer,
	}
}

func (s *inventarioService) Create(ctx context.Context, actor string, input dto.InventarioInput, imagen *multipart.FileHeader) (*domain.Inventario, error) {
	marca := strings.TrimSpace(input.Marca)
	modelo := strings.TrimSpace(input.Modelo)
	serial := strings.TrimSpace(input.SerialCodigoMac)
	categoria := strings.TrimSpace(input.Categoria)

	if marca == "" || modelo == "" || serial == "" || categoria == "" {
		return nil, domain.NewValidationError("marca, modelo, serial_codigo_mac y categoria son obligatorios")
	}

	estado, ok := domain.NormalizarEstado(input.Estado)
	if !ok {
		return nil, domain.NewValidationError("estado %q no es válido", input.Estado)
	}

	if err := s.validarCategoria(categoria); err != nil {
		return nil, err
	}

	cantidad := 1
	if input.Cantidad != nil {
		if *input.Cantidad < 1 {
			return nil, domain.NewValidationError("cantidad debe ser un entero mayor o igual a 1")
		}
		cantidad = *input.Cantidad
	}

	historialResp := domain.HistorialResp{}
	if input.Responsable.Presente() {
		draft := s.conCorreoResp(actor, *input.Responsable)
		nuevo, err := s.historial.AppendResp(nil, &draft)
		if err != nil {
			return nil, err
		}
		historialResp = nuevo
	}

	historialCambio := domain.HistorialCambio{}
	if input.Cambio.Presente() {
		draft := s.conUsuarioCambio(actor, *input.Cambio)
		nuevo, err := s.historial.AppendCambio(nil, &draft)
		if err != nil {
			return nil, err
		}
		historialCambio = nuevo
	}

	// The blob goes up before the record exists; an insert failure below
	// leaves an orphan blob, never a record with a dangling img_path.
	var img *domain.Imagen
	if imagen != nil {
		subida, err := s.assets.Subir(ctx, imagen)
		if err != nil {
			return nil, err
		}
		img = subida
	}

	inv := &domain.Inventario{
		Marca:            marca,
		Modelo:           modelo,
		SerialCodigoMac:  serial,
		Procesador:       strings.TrimSpace(input.Procesador),
		Almacenamiento:   strings.TrimSpace(input.Almacenamiento),
		Ram:              strings.TrimSpace(input.Ram),
		NicRed:           strings.TrimSpace(input.NicRed),
		Pulgadas:         strings.TrimSpace(input.Pulgadas),
		Cantidad:         cantidad,
		CargadorProbable: strings.TrimSpace(input.CargadorProbable),
		Estado:           estado,
		Categoria:        categoria,
		CorreoMonitoreo:  strings.TrimSpace(input.CorreoMonitoreo),
		HistorialResp:    historialResp,
		HistorialCambio:  historialCambio,
	}
	if img != nil {
		inv.ImgURL = img.URL
		inv.ImgPath = img.Path
	}

	created, err := s.repo.Insert(inv)
	if err != nil {
		if img != nil {
			log.Printf("insert failed after upload, blob %s left as orphan", img.Path)
		}
		if helper.IsDuplicateSerial(err) {
			return nil, domain.NewValidationError("ya existe un equipo con serial %s", serial)
		}
		return nil, err
	}

	s.publicar("inventario.created", created.ID, actor)
	return created, nil
}

func (s *inventarioService) Update(ctx context.Context, actor string, id string, input dto.InventarioInput, imagen *multipart.FileHeader) (*domain.Inventario, error) {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	aplicarCampo(updates, "marca", input.Marca)
	aplicarCampo(updates, "modelo", input.Modelo)
	aplicarCampo(updates, "serial_codigo_mac", input.SerialCodigoMac)
	aplicarCampo(updates, "procesador", input.Procesador)
	aplicarCampo(updates, "almacenamiento", input.Almacenamiento)
	aplicarCampo(updates, "ram", input.Ram)
	aplicarCampo(updates, "nic_red", input.NicRed)
	aplicarCampo(updates, "pulgadas", input.Pulgadas)
	aplicarCampo(updates, "cargador_probable", input.CargadorProbable)
	aplicarCampo(updates, "correo_monitoreo", input.CorreoMonitoreo)

	if strings.TrimSpace(input.Estado) != "" {
		estado, ok := domain.NormalizarEstado(input.Estado)
		if !ok {
			return nil, domain.NewValidationError("estado %q no es válido", input.Estado)
		}
		updates["estado"] = estado
	}

	if categoria := strings.TrimSpace(input.Categoria); categoria != "" {
		if err := s.validarCategoria(categoria); err != nil {
			return nil, err
		}
		updates["categoria"] = categoria
	}

	if input.Cantidad != nil {
		if *input.Cantidad < 1 {
			return nil, domain.NewValidationError("cantidad debe ser un entero mayor o igual a 1")
		}
		updates["cantidad"] = *input.Cantidad
	}

	// Drafts append to the existing trails; the stored entries are never
	// touched.
	if input.Responsable.Presente() {
		draft := s.conCorreoResp(actor, *input.Responsable)
		nuevo, err := s.historial.AppendResp(existing.HistorialResp, &draft)
		if err != nil {
			return nil, err
		}
		updates["historial_resp"] = nuevo
	}

	if input.Cambio.Presente() {
		draft := s.conUsuarioCambio(actor, *input.Cambio)
		nuevo, err := s.historial.AppendCambio(existing.HistorialCambio, &draft)
		if err != nil {
			return nil, err
		}
		updates["historial_cambio"] = nuevo
	}

	var img *domain.Imagen
	if imagen != nil {
		subida, err := s.assets.Subir(ctx, imagen)
		if err != nil {
			return nil, err
		}
		img = subida
		updates["img_url"] = img.URL
		updates["img_path"] = img.Path
	}

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		if img != nil {
			log.Printf("update failed after upload, blob %s left as orphan", img.Path)
		}
		if helper.IsDuplicateSerial(err) {
			return nil, domain.NewValidationError("ya existe un equipo con serial %s", input.SerialCodigoMac)
		}
		return nil, err
	}

	// Retire the old blob only after the record durably points at the new
	// one. A crash in between leaves an orphan, not a broken record.
	if img != nil && existing.ImgPath != "" && existing.ImgPath != img.Path {
		s.assets.Retirar(ctx, existing.ImgPath)
	}

	s.publicar("inventario.updated", updated.ID, actor)
	return updated, nil
}

// Delete is idempotent: a missing record is not an error, and a blob that
// refuses to delete never blocks removing the record.
func (s *inventarioService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil
		}
		return err
	}

	if existing.ImgPath != "" {
		s.assets.Retirar(ctx, existing.ImgPath)
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.publicar("inventario.deleted", id, "")
	return nil
}

func (s *inventarioService) Get(ctx context.Context, id string) (*domain.Inventario, error) {
	return s.repo.FindByID(id)
}

func (s *inventarioService) List(ctx context.Context) ([]domain.Inventario, error) {
	return s.repo.FindAll()
}

// validarCategoria accepts the baseline vocabulary plus any categoria
// already present in the store.
func (s *inventarioService) validarCategoria(categoria string) error {
	for _, c := range domain.CategoriasBase {
		if c == categoria {
			return nil
		}
	}

	observadas, err := s.repo.DistinctCategorias()
	if err != nil {
		return err
	}
	for _, c := range observadas {
		if c == categoria {
			return nil
		}
	}

	return domain.NewValidationError("categoria %q no es válida", categoria)
}

// The acting user's email backs the audit fields when the draft leaves
// them empty.
func (s *inventarioService) conCorreoResp(actor string, draft dto.ResponsableDraft) dto.ResponsableDraft {
	if strings.TrimSpace(draft.CorreoMonitoreo) == "" {
		draft.CorreoMonitoreo = actor
	}
	return draft
}

func (s *inventarioService) conUsuarioCambio(actor string, draft dto.CambioDraft) dto.CambioDraft {
	if strings.TrimSpace(draft.Usuario) == "" {
		draft.Usuario = actor
	}
	return draft
}

func aplicarCampo(updates map[string]any, col, val string) {
	if v := strings.TrimSpace(val); v != "" {
		updates[col] = v
	}
}

func (s *inventarioService) publicar(evento, id, actor string) {
	if s.producer == nil {
		return
	}
	payload := fmt.Sprintf(
		`{"id":%q,"actor":%q,"at":%q}`,
		id, actor, time.Now().Format(time.RFC3339),
	)
	if err := s.producer.PublishMessage([]byte(evento), []byte(payload)); err != nil {
		log.Printf("publish %s event error: %v", evento, err)
	}
}
