package services

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/soporteti/inventario_service/internal/domain"
	"github.com/soporteti/inventario_service/internal/dto"
)

const fechaLayout = "2006-01-02"

// HistorialService owns the two audit trails embedded in a record. Only
// appends are exposed: entries are never edited or removed, a correction
// is a new entry.
type HistorialService interface {
	AppendResp(actual domain.HistorialResp, draft *dto.ResponsableDraft) (domain.HistorialResp, error)
	AppendCambio(actual domain.HistorialCambio, draft *dto.CambioDraft) (domain.HistorialCambio, error)

	// Presentation helpers: newest first, ties keep append order. The
	// stored sequences are never re-sorted.
	OrdenarResp(h domain.HistorialResp) domain.HistorialResp
	OrdenarCambios(h domain.HistorialCambio) domain.HistorialCambio
}

type historialService struct{}

func NewHistorialService() HistorialService {
	return &historialService{}
}

func (s *historialService) AppendResp(actual domain.HistorialResp, draft *dto.ResponsableDraft) (domain.HistorialResp, error) {
	if !draft.Presente() {
		return nil, domain.NewValidationError("responsable es obligatorio para registrar una entrega")
	}

	entry := domain.RegistroResponsable{
		ID:                uuid.NewString(),
		Responsable:       strings.TrimSpace(draft.Responsable),
		Fecha:             fechaODefecto(draft.Fecha),
		CargadorEntregado: strings.TrimSpace(draft.CargadorEntregado),
		MouseEntregado:    strings.TrimSpace(draft.MouseEntregado),
		Detalle:           strings.TrimSpace(draft.Detalle),
		Observaciones:     strings.TrimSpace(draft.Observaciones),
		CorreoMonitoreo:   strings.TrimSpace(draft.CorreoMonitoreo),
	}

	out := make(domain.HistorialResp, 0, len(actual)+1)
	out = append(out, actual...)
	return append(out, entry), nil
}

func (s *historialService) AppendCambio(actual domain.HistorialCambio, draft *dto.CambioDraft) (domain.HistorialCambio, error) {
	if !draft.Presente() {
		return nil, domain.NewValidationError("tipo_cambio es obligatorio para registrar un cambio")
	}

	entry := domain.RegistroCambio{
		ID:          uuid.NewString(),
		TipoCambio:  strings.TrimSpace(draft.TipoCambio),
		Fecha:       fechaODefecto(draft.Fecha),
		Descripcion: strings.TrimSpace(draft.Descripcion),
		Usuario:     strings.TrimSpace(draft.Usuario),
	}

	out := make(domain.HistorialCambio, 0, len(actual)+1)
	out = append(out, actual...)
	return append(out, entry), nil
}

func (s *historialService) OrdenarResp(h domain.HistorialResp) domain.HistorialResp {
	out := make(domain.HistorialResp, len(h))
	copy(out, h)
	sort.SliceStable(out, func(i, j int) bool {
		return fechaDespues(out[i].Fecha, out[j].Fecha)
	})
	return out
}

func (s *historialService) OrdenarCambios(h domain.HistorialCambio) domain.HistorialCambio {
	out := make(domain.HistorialCambio, len(h))
	copy(out, h)
	sort.SliceStable(out, func(i, j int) bool {
		return fechaDespues(out[i].Fecha, out[j].Fecha)
	})
	return out
}

func fechaODefecto(fecha string) string {
	fecha = strings.TrimSpace(fecha)
	if fecha == "" {
		return time.Now().Format(fechaLayout)
	}
	return fecha
}

// fechaDespues orders ISO dates descending; unparseable values fall back
// to a plain string comparison so legacy entries still sort somewhere
// deterministic.
func fechaDespues(a, b string) bool {
	ta, errA := time.Parse(fechaLayout, a)
	tb, errB := time.Parse(fechaLayout, b)
	if errA != nil || errB != nil {
		return a > b
	}
	return ta.After(tb)
}
