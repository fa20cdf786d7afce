package domain

// CategoriasBase is the baseline category vocabulary. The effective set is
// this list plus every distinct categoria already present on a record, so
// categories entered in the past stay valid and filterable.
var CategoriasBase = []string{
	"Laptops Windows",
	"Laptops Apple",
	"Cargadores",
	"Monitores",
	"PCS",
	"Teléfonos",
	"Impresoras",
	"Telecomunicaciones",
	"Televisores",
	"Equipos de video",
	"Equipos de Audio",
	"Accesorios Audiovisuales",
}
