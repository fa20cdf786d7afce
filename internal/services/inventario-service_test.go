package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/soporteti/inventario_service/internal/domain"
	"github.com/soporteti/inventario_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- fakes ----------

type fakeRepo struct {
	items     map[string]*domain.Inventario
	insertErr error
	updateErr error
	ops       *[]string
}

func newFakeRepo() *fakeRepo {
	ops := []string{}
	return &fakeRepo{items: map[string]*domain.Inventario{}, ops: &ops}
}

func (r *fakeRepo) seed(inv *domain.Inventario) *domain.Inventario {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	cp := *inv
	r.items[cp.ID] = &cp
	return &cp
}

func (r *fakeRepo) Insert(inv *domain.Inventario) (*domain.Inventario, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	inv.ID = uuid.NewString()
	cp := *inv
	r.items[cp.ID] = &cp
	*r.ops = append(*r.ops, "insert")
	out := cp
	return &out, nil
}

func (r *fakeRepo) FindByID(id string) (*domain.Inventario, error) {
	inv, ok := r.items[id]
	if !ok {
		return nil, &domain.NotFoundError{ID: id}
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeRepo) FindAll() ([]domain.Inventario, error) {
	out := make([]domain.Inventario, 0, len(r.items))
	for _, inv := range r.items {
		out = append(out, *inv)
	}
	return out, nil
}

func (r *fakeRepo) Update(id string, updates map[string]any) (*domain.Inventario, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	inv, ok := r.items[id]
	if !ok {
		return nil, &domain.NotFoundError{ID: id}
	}
	for col, val := range updates {
		switch col {
		case "marca":
			inv.Marca = val.(string)
		case "modelo":
			inv.Modelo = val.(string)
		case "serial_codigo_mac":
			inv.SerialCodigoMac = val.(string)
		case "procesador":
			inv.Procesador = val.(string)
		case "almacenamiento":
			inv.Almacenamiento = val.(string)
		case "ram":
			inv.Ram = val.(string)
		case "nic_red":
			inv.NicRed = val.(string)
		case "pulgadas":
			inv.Pulgadas = val.(string)
		case "cargador_probable":
			inv.CargadorProbable = val.(string)
		case "correo_monitoreo":
			inv.CorreoMonitoreo = val.(string)
		case "estado":
			inv.Estado = val.(string)
		case "categoria":
			inv.Categoria = val.(string)
		case "cantidad":
			inv.Cantidad = val.(int)
		case "img_url":
			inv.ImgURL = val.(string)
		case "img_path":
			inv.ImgPath = val.(string)
		case "historial_resp":
			inv.HistorialResp = val.(domain.HistorialResp)
		case "historial_cambio":
			inv.HistorialCambio = val.(domain.HistorialCambio)
		default:
			return nil, fmt.Errorf("fakeRepo: unexpected column %q", col)
		}
	}
	*r.ops = append(*r.ops, "update")
	cp := *inv
	return &cp, nil
}

func (r *fakeRepo) Delete(id string) error {
	delete(r.items, id)
	*r.ops = append(*r.ops, "delete")
	return nil
}

func (r *fakeRepo) DistinctCategorias() ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, inv := range r.items {
		if inv.Categoria != "" && !seen[inv.Categoria] {
			seen[inv.Categoria] = true
			out = append(out, inv.Categoria)
		}
	}
	return out, nil
}

type fakeAssets struct {
	n          int
	failUpload bool
	retired    []string
	ops        *[]string
}

func (a *fakeAssets) Subir(_ context.Context, _ *multipart.FileHeader) (*domain.Imagen, error) {
	if a.failUpload {
		return nil, &domain.AssetStoreError{Op: "upload", Err: errors.New("boom")}
	}
	a.n++
	path := fmt.Sprintf("inventario/blob-%d", a.n)
	*a.ops = append(*a.ops, "upload:"+path)
	return &domain.Imagen{URL: "https://cdn.example/" + path + ".jpg", Path: path}, nil
}

func (a *fakeAssets) Retirar(_ context.Context, path string) bool {
	a.retired = append(a.retired, path)
	*a.ops = append(*a.ops, "retire:"+path)
	return true
}

func newSvcForTest() (InventarioService, *fakeRepo, *fakeAssets) {
	repo := newFakeRepo()
	assets := &fakeAssets{ops: repo.ops}
	svc := NewInventarioService(repo, NewHistorialService(), assets, nil)
	return svc, repo, assets
}

func inputBasica() dto.InventarioInput {
	return dto.InventarioInput{
		Marca:           "Dell",
		Modelo:          "E7450",
		SerialCodigoMac: "ABC123",
		Categoria:       "Laptops Windows",
		Estado:          "en uso",
	}
}

const actor = "soporte@example.com"

// ---------- create ----------

func TestCreateBasico(t *testing.T) {
	svc, _, _ := newSvcForTest()

	inv, err := svc.Create(context.Background(), actor, inputBasica(), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, "Dell", inv.Marca)
	assert.Equal(t, domain.EstadoEnUso, inv.Estado)
	assert.Equal(t, 1, inv.Cantidad)
	assert.Empty(t, inv.ImgURL)
	assert.Empty(t, inv.ImgPath)
	assert.Empty(t, inv.HistorialResp)
	assert.Empty(t, inv.HistorialCambio)
}

func TestCreateNormalizaEstado(t *testing.T) {
	svc, _, _ := newSvcForTest()

	in := inputBasica()
	in.Estado = "  Almacén "

	inv, err := svc.Create(context.Background(), actor, in, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.EstadoAlmacen, inv.Estado)
}

func TestCreateRequiereCamposObligatorios(t *testing.T) {
	svc, repo, _ := newSvcForTest()

	in := inputBasica()
	in.Marca = "  "

	_, err := svc.Create(context.Background(), actor, in, nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, repo.items)
}

func TestCreateRechazaEstadoInvalido(t *testing.T) {
	svc, repo, _ := newSvcForTest()

	in := inputBasica()
	in.Estado = "prestado"

	_, err := svc.Create(context.Background(), actor, in, nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, repo.items)
}

func TestCreateRechazaCategoriaDesconocida(t *testing.T) {
	svc, _, _ := newSvcForTest()

	in := inputBasica()
	in.Categoria = "Drones"

	_, err := svc.Create(context.Background(), actor, in, nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCreateAceptaCategoriaYaObservada(t *testing.T) {
	svc, repo, _ := newSvcForTest()
	repo.seed(&domain.Inventario{Categoria: "Drones", SerialCodigoMac: "OLD"})

	in := inputBasica()
	in.Categoria = "Drones"

	inv, err := svc.Create(context.Background(), actor, in, nil)
	require.NoError(t, err)
	assert.Equal(t, "Drones", inv.Categoria)
}

func TestCreateRechazaCantidadInvalida(t *testing.T) {
	svc, _, _ := newSvcForTest()

	cero := 0
	in := inputBasica()
	in.Cantidad = &cero

	_, err := svc.Create(context.Background(), actor, in, nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCreateConDraftResponsable(t *testing.T) {
	svc, _, _ := newSvcForTest()

	in := inputBasica()
	in.Responsable = &dto.ResponsableDraft{Responsable: "Ana", Fecha: "2024-01-01"}

	inv, err := svc.Create(context.Background(), actor, in, nil)
	require.NoError(t, err)

	require.Len(t, inv.HistorialResp, 1)
	assert.Equal(t, "Ana", inv.HistorialResp[0].Responsable)
	assert.Equal(t, "2024-01-01", inv.HistorialResp[0].Fecha)
	// acting user's email fills the audit field when the draft omits it
	assert.Equal(t, actor, inv.HistorialResp[0].CorreoMonitoreo)
	assert.Empty(t, inv.HistorialCambio)
}

func TestCreateConDraftCambio(t *testing.T) {
	svc, _, _ := newSvcForTest()

	in := inputBasica()
	in.Cambio = &dto.CambioDraft{TipoCambio: "Alta inicial", Fecha: "2024-01-01"}

	inv, err := svc.Create(context.Background(), actor, in, nil)
	require.NoError(t, err)

	require.Len(t, inv.HistorialCambio, 1)
	assert.Equal(t, "Alta inicial", inv.HistorialCambio[0].TipoCambio)
	assert.Equal(t, actor, inv.HistorialCambio[0].Usuario)
}

func TestCreateConImagen(t *testing.T) {
	svc, _, assets := newSvcForTest()

	inv, err := svc.Create(context.Background(), actor, inputBasica(), &multipart.FileHeader{Filename: "foto.jpg"})
	require.NoError(t, err)

	assert.Equal(t, "inventario/blob-1", inv.ImgPath)
	assert.NotEmpty(t, inv.ImgURL)
	assert.Empty(t, assets.retired)
}

func TestCreateAbortaSiUploadFalla(t *testing.T) {
	svc, repo, assets := newSvcForTest()
	assets.failUpload = true

	_, err := svc.Create(context.Background(), actor, inputBasica(), &multipart.FileHeader{Filename: "foto.jpg"})
	require.Error(t, err)
	assert.True(t, domain.IsAssetStore(err))
	assert.Empty(t, repo.items)
}

// ---------- update ----------

func TestUpdateInexistenteDaNotFound(t *testing.T) {
	svc, _, _ := newSvcForTest()

	_, err := svc.Update(context.Background(), actor, "nope", inputBasica(), nil)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdateAppendeDraftSinTocarHistorial(t *testing.T) {
	svc, repo, _ := newSvcForTest()

	seed := repo.seed(&domain.Inventario{
		Marca: "Dell", Modelo: "E7450", SerialCodigoMac: "ABC123",
		Categoria: "Laptops Windows", Estado: domain.EstadoEnUso,
		HistorialResp: domain.HistorialResp{
			{ID: "prev", Responsable: "Luis", Fecha: "2023-06-01"},
		},
	})

	in := dto.InventarioInput{
		Responsable: &dto.ResponsableDraft{Responsable: "Ana", Fecha: "2024-01-01"},
	}

	inv, err := svc.Update(context.Background(), actor, seed.ID, in, nil)
	require.NoError(t, err)

	require.Len(t, inv.HistorialResp, 2)
	assert.Equal(t, "prev", inv.HistorialResp[0].ID)
	assert.Equal(t, "Luis", inv.HistorialResp[0].Responsable)
	assert.Equal(t, "Ana", inv.HistorialResp[1].Responsable)

	// untouched fields stay as they were
	assert.Equal(t, "Dell", inv.Marca)
	assert.Equal(t, domain.EstadoEnUso, inv.Estado)
}

func TestUpdateRechazaEstadoInvalidoSinPersistir(t *testing.T) {
	svc, repo, _ := newSvcForTest()

	seed := repo.seed(&domain.Inventario{
		Marca: "Dell", Modelo: "E7450", SerialCodigoMac: "ABC123",
		Categoria: "Laptops Windows", Estado: domain.EstadoEnUso,
	})

	_, err := svc.Update(context.Background(), actor, seed.ID, dto.InventarioInput{Estado: "roto"}, nil)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	guardado, err := repo.FindByID(seed.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EstadoEnUso, guardado.Estado)
}

func TestUpdateReemplazaImagenYRetiraDespuesDelCommit(t *testing.T) {
	svc, repo, assets := newSvcForTest()

	seed := repo.seed(&domain.Inventario{
		Marca: "Dell", Modelo: "E7450", SerialCodigoMac: "ABC123",
		Categoria: "Laptops Windows", Estado: domain.EstadoEnUso,
		ImgURL: "https://cdn.example/old.jpg", ImgPath: "inventario/old",
	})

	inv, err := svc.Update(context.Background(), actor, seed.ID, dto.InventarioInput{}, &multipart.FileHeader{Filename: "nueva.png"})
	require.NoError(t, err)

	assert.Equal(t, "inventario/blob-1", inv.ImgPath)
	assert.NotEqual(t, "inventario/old", inv.ImgPath)
	assert.Equal(t, []string{"inventario/old"}, assets.retired)

	// strict ordering: upload new, commit record, retire old
	assert.Equal(t, []string{"upload:inventario/blob-1", "update", "retire:inventario/old"}, *repo.ops)
}

func TestUpdateNoEscribeSiUploadFalla(t *testing.T) {
	svc, repo, assets := newSvcForTest()
	assets.failUpload = true

	seed := repo.seed(&domain.Inventario{
		Marca: "Dell", Modelo: "E7450", SerialCodigoMac: "ABC123",
		Categoria: "Laptops Windows", Estado: domain.EstadoEnUso,
		ImgPath: "inventario/old",
	})

	_, err := svc.Update(context.Background(), actor, seed.ID, dto.InventarioInput{}, &multipart.FileHeader{Filename: "nueva.png"})
	require.Error(t, err)
	assert.True(t, domain.IsAssetStore(err))

	guardado, _ := repo.FindByID(seed.ID)
	assert.Equal(t, "inventario/old", guardado.ImgPath)
	assert.Empty(t, assets.retired)
	assert.Empty(t, *repo.ops)
}

// ---------- delete ----------

func TestDeleteRetiraBlobYBorraRegistro(t *testing.T) {
	svc, repo, assets := newSvcForTest()

	seed := repo.seed(&domain.Inventario{
		Marca: "Dell", Modelo: "E7450", SerialCodigoMac: "ABC123",
		Categoria: "Laptops Windows", Estado: domain.EstadoEnUso,
		ImgPath: "inventario/blob-2",
	})

	require.NoError(t, svc.Delete(context.Background(), seed.ID))

	assert.Equal(t, []string{"inventario/blob-2"}, assets.retired)

	_, err := svc.Get(context.Background(), seed.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestDeleteEsIdempotente(t *testing.T) {
	svc, _, assets := newSvcForTest()

	require.NoError(t, svc.Delete(context.Background(), "no-existe"))
	assert.Empty(t, assets.retired)
}

// ---------- end to end over the fakes ----------

func TestEscenarioCompleto(t *testing.T) {
	svc, repo, assets := newSvcForTest()
	ctx := context.Background()

	// A: create without image or drafts
	inv, err := svc.Create(ctx, actor, inputBasica(), nil)
	require.NoError(t, err)
	assert.Empty(t, inv.ImgPath)
	assert.Empty(t, inv.HistorialResp)
	assert.Equal(t, domain.EstadoEnUso, inv.Estado)

	// B: append custody draft
	inv, err = svc.Update(ctx, actor, inv.ID, dto.InventarioInput{
		Responsable: &dto.ResponsableDraft{Responsable: "Ana", Fecha: "2024-01-01"},
	}, nil)
	require.NoError(t, err)
	require.Len(t, inv.HistorialResp, 1)
	assert.Equal(t, "Ana", inv.HistorialResp[0].Responsable)

	// C: attach an image, then replace it
	inv, err = svc.Update(ctx, actor, inv.ID, dto.InventarioInput{}, &multipart.FileHeader{Filename: "a.jpg"})
	require.NoError(t, err)
	primera := inv.ImgPath

	inv, err = svc.Update(ctx, actor, inv.ID, dto.InventarioInput{}, &multipart.FileHeader{Filename: "b.jpg"})
	require.NoError(t, err)
	assert.NotEqual(t, primera, inv.ImgPath)
	assert.Equal(t, []string{primera}, assets.retired)

	// D: delete retires the current blob and removes the record
	require.NoError(t, svc.Delete(ctx, inv.ID))
	assert.Equal(t, []string{primera, inv.ImgPath}, assets.retired)

	_, err = repo.FindByID(inv.ID)
	assert.True(t, domain.IsNotFound(err))
}
