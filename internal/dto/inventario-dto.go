package dto

import "strings"

// InventarioInput carries the writable fields of a record. On create the
// required fields must be present; on update an empty string means "leave
// unchanged" (histories and the image are never cleared through this DTO).
type InventarioInput struct {
	Marca            string `json:"marca" form:"marca"`
	Modelo           string `json:"modelo" form:"modelo"`
	SerialCodigoMac  string `json:"serial_codigo_mac" form:"serial_codigo_mac"`
	Procesador       string `json:"procesador" form:"procesador"`
	Almacenamiento   string `json:"almacenamiento" form:"almacenamiento"`
	Ram              string `json:"ram" form:"ram"`
	NicRed           string `json:"nic_red" form:"nic_red"`
	Pulgadas         string `json:"pulgadas" form:"pulgadas"`
	Cantidad         *int   `json:"cantidad" form:"cantidad"`
	CargadorProbable string `json:"cargador_probable" form:"cargador_probable"`
	Estado           string `json:"estado" form:"estado"`
	Categoria        string `json:"categoria" form:"categoria"`
	CorreoMonitoreo  string `json:"correo_monitoreo" form:"correo_monitoreo"`

	// Optional drafts. In multipart requests these travel as JSON-encoded
	// form fields "responsable" and "cambio"; the handler fills them in.
	Responsable *ResponsableDraft `json:"responsable" form:"-"`
	Cambio      *CambioDraft      `json:"cambio" form:"-"`
}

// ResponsableDraft is a provisional custody entry. It only becomes a real
// historial_resp entry when Responsable is non-empty.
type ResponsableDraft struct {
	Responsable       string `json:"responsable"`
	Fecha             string `json:"fecha"`
	CargadorEntregado string `json:"cargador_entregado"`
	MouseEntregado    string `json:"mouse_entregado"`
	Detalle           string `json:"detalle"`
	Observaciones     string `json:"observaciones"`
	CorreoMonitoreo   string `json:"correo_monitoreo"`
}

func (d *ResponsableDraft) Presente() bool {
	return d != nil && strings.TrimSpace(d.Responsable) != ""
}

// CambioDraft is a provisional change entry, keyed on TipoCambio.
type CambioDraft struct {
	TipoCambio  string `json:"tipo_cambio"`
	Fecha       string `json:"fecha"`
	Descripcion string `json:"descripcion"`
	Usuario     string `json:"usuario"`
}

func (d *CambioDraft) Presente() bool {
	return d != nil && strings.TrimSpace(d.TipoCambio) != ""
}

type ListResponse struct {
	Count int `json:"count"`
	Data  any `json:"data"`
}
