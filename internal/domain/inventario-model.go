package domain

import "time"

// Inventario is the persisted shape of one equipment record. Column names
// are the wire contract consumed by the frontend, do not rename them.
type Inventario struct {
	ID               string          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Marca            string          `gorm:"type:varchar(120);not null" json:"marca"`
	Modelo           string          `gorm:"type:varchar(120);not null" json:"modelo"`
	SerialCodigoMac  string          `gorm:"column:serial_codigo_mac;type:varchar(120);not null;uniqueIndex:uidx_inventario_serial" json:"serial_codigo_mac"`
	Procesador       string          `gorm:"type:varchar(120)" json:"procesador,omitempty"`
	Almacenamiento   string          `gorm:"type:varchar(120)" json:"almacenamiento,omitempty"`
	Ram              string          `gorm:"type:varchar(120)" json:"ram,omitempty"`
	NicRed           string          `gorm:"column:nic_red;type:varchar(120)" json:"nic_red,omitempty"`
	Pulgadas         string          `gorm:"type:varchar(60)" json:"pulgadas,omitempty"`
	Cantidad         int             `gorm:"not null;default:1" json:"cantidad"`
	CargadorProbable string          `gorm:"column:cargador_probable;type:varchar(120)" json:"cargador_probable,omitempty"`
	Estado           string          `gorm:"type:varchar(30);not null" json:"estado"`
	Categoria        string          `gorm:"type:varchar(120);not null" json:"categoria"`
	CorreoMonitoreo  string          `gorm:"column:correo_monitoreo;type:varchar(254)" json:"correo_monitoreo,omitempty"`
	ImgURL           string          `gorm:"column:img_url;type:text" json:"img_url,omitempty"`
	ImgPath          string          `gorm:"column:img_path;type:text" json:"img_path,omitempty"`
	HistorialResp    HistorialResp   `gorm:"column:historial_resp;type:jsonb;not null;default:'[]'" json:"historial_resp"`
	HistorialCambio  HistorialCambio `gorm:"column:historial_cambio;type:jsonb;not null;default:'[]'" json:"historial_cambio"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Inventario) TableName() string {
	return "inventario"
}

// Imagen is the pair handed back by the blob store: the public URL served
// to clients and the store-internal path used later for deletion. Both are
// set together or not at all.
type Imagen struct {
	URL  string `json:"img_url"`
	Path string `json:"img_path"`
}
