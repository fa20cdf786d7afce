package services

import (
	"sort"
	"strings"

	"github.com/soporteti/inventario_service/internal/domain"
	"github.com/soporteti/inventario_service/internal/repository"
)

// CatalogoService derives read-only views of the record collection: the
// free-text/category filter and the merged category facet.
type CatalogoService interface {
	// Filtrar is a pure projection: case-insensitive substring match of
	// termino against marca, modelo and serial_codigo_mac (any hit
	// matches, empty matches all), ANDed with an exact categoria match.
	Filtrar(items []domain.Inventario, termino, categoria string) []domain.Inventario

	// Categorias returns the baseline vocabulary merged with every
	// distinct categoria on record, sorted, so user-entered categories
	// stay discoverable as filters.
	Categorias() ([]string, error)
}

type catalogoService struct {
	repo repository.InventarioRepository
}

func NewCatalogoService(repo repository.InventarioRepository) CatalogoService {
	return &catalogoService{repo: repo}
}

func (s *catalogoService) Filtrar(items []domain.Inventario, termino, categoria string) []domain.Inventario {
	termino = strings.ToLower(strings.TrimSpace(termino))
	categoria = strings.TrimSpace(categoria)

	out := make([]domain.Inventario, 0, len(items))
	for _, item := range items {
		if categoria != "" && item.Categoria != categoria {
			continue
		}
		if termino != "" && !coincideTermino(item, termino) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func coincideTermino(item domain.Inventario, termino string) bool {
	return strings.Contains(strings.ToLower(item.Marca), termino) ||
		strings.Contains(strings.ToLower(item.Modelo), termino) ||
		strings.Contains(strings.ToLower(item.SerialCodigoMac), termino)
}

func (s *catalogoService) Categorias() ([]string, error) {
	observadas, err := s.repo.DistinctCategorias()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(domain.CategoriasBase)+len(observadas))
	merged := make([]string, 0, len(domain.CategoriasBase)+len(observadas))

	for _, c := range domain.CategoriasBase {
		if !seen[c] {
			seen[c] = true
			merged = append(merged, c)
		}
	}
	for _, c := range observadas {
		if c != "" && !seen[c] {
			seen[c] = true
			merged = append(merged, c)
		}
	}

	sort.Strings(merged)
	return merged, nil
}
