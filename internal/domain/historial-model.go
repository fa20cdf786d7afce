package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// RegistroResponsable is one custody handover in historial_resp. Entries
// are immutable once appended; corrections are new entries.
type RegistroResponsable struct {
	ID                string `json:"id"`
	Responsable       string `json:"responsable"`
	Fecha             string `json:"fecha"`
	CargadorEntregado string `json:"cargador_entregado,omitempty"`
	MouseEntregado    string `json:"mouse_entregado,omitempty"`
	Detalle           string `json:"detalle,omitempty"`
	Observaciones     string `json:"observaciones,omitempty"`
	CorreoMonitoreo   string `json:"correo_monitoreo,omitempty"`
}

// RegistroCambio is one maintenance/modification event in historial_cambio.
type RegistroCambio struct {
	ID          string `json:"id"`
	TipoCambio  string `json:"tipo_cambio"`
	Fecha       string `json:"fecha"`
	Descripcion string `json:"descripcion,omitempty"`
	Usuario     string `json:"usuario,omitempty"`
}

type HistorialResp []RegistroResponsable

type HistorialCambio []RegistroCambio

// Both histories live as jsonb columns so the whole log travels with the
// record, matching the wire contract. A nil slice persists as [].

func (h HistorialResp) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (h *HistorialResp) Scan(src any) error {
	return scanJSON(src, h)
}

func (h HistorialCambio) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (h *HistorialCambio) Scan(src any) error {
	return scanJSON(src, h)
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
