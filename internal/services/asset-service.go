package services

import (
	"context"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/soporteti/inventario_service/internal/domain"
	"github.com/soporteti/inventario_service/internal/interfaces"
	"github.com/soporteti/inventario_service/pkg/imageutil"
	"github.com/soporteti/inventario_service/pkg/utils"
)

const (
	maxImagenBytes   = 5 * 1024 * 1024
	imagenFolder     = "inventario"
	imagenMaxWidth   = 1600
	imagenJPGQuality = 85
)

var extensionesImagen = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// AssetService manages the single image blob owned by a record. Subir
// validates and stores a new blob; Retirar is the best-effort delete used
// when a record replaces or drops its image. A record owns at most one
// live blob, the replacement ordering (upload new, commit record, retire
// old) is enforced by the inventario service.
type AssetService interface {
	Subir(ctx context.Context, file *multipart.FileHeader) (*domain.Imagen, error)
	Retirar(ctx context.Context, path string) bool
}

type assetService struct {
	uploader interfaces.Uploader
}

func NewAssetService(uploader interfaces.Uploader) AssetService {
	return &assetService{uploader: uploader}
}

func (s *assetService) Subir(ctx context.Context, file *multipart.FileHeader) (*domain.Imagen, error) {
	if file == nil {
		return nil, domain.NewValidationError("imagen es obligatoria")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !extensionesImagen[ext] {
		return nil, domain.NewValidationError("solo se admiten imágenes jpg/jpeg/png/webp")
	}
	if file.Size > maxImagenBytes {
		return nil, domain.NewValidationError("imagen demasiado grande (máximo 5MB)")
	}

	f, err := file.Open()
	if err != nil {
		return nil, &domain.AssetStoreError{Op: "open", Err: err}
	}
	defer f.Close()

	raw, err := utils.ReadAllLimit(f, maxImagenBytes)
	if err != nil {
		return nil, domain.NewValidationError("imagen demasiado grande (máximo 5MB)")
	}

	normalized, err := imageutil.NormalizeToJPG(raw, imagenMaxWidth, imagenJPGQuality)
	if err != nil {
		return nil, domain.NewValidationError("el archivo no es una imagen válida")
	}

	// uuid blob names make collisions a non-issue.
	name := uuid.NewString()

	url, path, err := s.uploader.UploadBytes(ctx, imagenFolder, name, normalized)
	if err != nil {
		return nil, &domain.AssetStoreError{Op: "upload", Err: err}
	}

	return &domain.Imagen{URL: url, Path: path}, nil
}

// Retirar never fails the caller: a record must stay manageable even when
// a stale blob refuses to die. The orphan is logged for later cleanup.
func (s *assetService) Retirar(ctx context.Context, path string) bool {
	if strings.TrimSpace(path) == "" {
		return true
	}

	if err := s.uploader.Delete(ctx, path); err != nil {
		log.Printf("retire blob %s failed (orphan left behind): %v", path, err)
		return false
	}
	return true
}
