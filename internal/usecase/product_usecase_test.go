package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) Save(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	saved, _ := args.Get(0).(model.Product)
	return saved, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepoMock) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) SearchByKeyword(ctx context.Context, keyword string) ([]model.Product, error) {
	panic("not used in ProductUsecase tests")
}

func (m *ProductRepoMock) FindByCategory(ctx context.Context, category string) ([]model.Product, error) {
	panic("not used in ProductUsecase tests")
}

// Saveに渡されたentityを横取りして検証に使う。
func captureSave(pRepo *ProductRepoMock, returned model.Product) *model.Product {
	var captured model.Product
	pRepo.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(model.Product)
		}).
		Return(returned, nil)
	return &captured
}

// =====================
// Create（JSON）
// =====================

func TestProductUsecase_CreateProduct_Defaults(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	captured := captureSave(pRepo, model.Product{ID: 1})

	out, err := uc.CreateProduct(ctx, usecase.CreateProductInput{
		Name:          "Shirt",
		Price:         "19.99",
		StockQuantity: "5",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)

	// brand空文字・公開フラグtrue・発売日は今日
	assert.Equal(t, "", captured.Brand)
	assert.True(t, captured.ProductAvailable)
	assert.Equal(t, model.Today(), captured.ReleaseDate)
	assert.Equal(t, "19.99", captured.Price)
}

func TestProductUsecase_CreateProduct_ExplicitValues(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	captured := captureSave(pRepo, model.Product{ID: 2})

	brand := "Acme"
	available := false
	release := model.DateOf(model.Today().AddDate(0, -1, 0))

	_, err := uc.CreateProduct(ctx, usecase.CreateProductInput{
		Name:             "Shirt",
		Price:            "19.99",
		StockQuantity:    "5",
		Brand:            &brand,
		ProductAvailable: &available,
		ReleaseDate:      &release,
	})
	assert.NoError(t, err)

	assert.Equal(t, "Acme", captured.Brand)
	assert.False(t, captured.ProductAvailable)
	assert.Equal(t, release, captured.ReleaseDate)
}

// =====================
// Create（画像付き）
// =====================

func TestProductUsecase_CreateProductWithImages_FirstImageOnly(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	captured := captureSave(pRepo, model.Product{ID: 1})

	img1 := usecase.ImageFile{Name: "shirt.jpg", ContentType: "image/jpeg", Data: []byte{0xFF, 0xD8}}

	out, err := uc.CreateProductWithImages(ctx, usecase.ProductFields{
		Name:          "Shirt",
		Price:         "19.99",
		StockQuantity: "5",
	}, img1, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)

	assert.Equal(t, "shirt.jpg", captured.ImageName)
	assert.Equal(t, "image/jpeg", captured.ImageType)
	assert.Equal(t, []byte{0xFF, 0xD8}, captured.ImageData)

	// 2枚目スロットは空のまま
	assert.Empty(t, captured.ImageName2)
	assert.Nil(t, captured.ImageData2)

	assert.True(t, captured.ProductAvailable)
	assert.Equal(t, model.Today(), captured.ReleaseDate)
}

func TestProductUsecase_CreateProductWithImages_BothImages(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	captured := captureSave(pRepo, model.Product{ID: 1})

	img1 := usecase.ImageFile{Name: "front.png", ContentType: "image/png", Data: []byte{1, 2}}
	img2 := usecase.ImageFile{Name: "back.png", ContentType: "image/png", Data: []byte{3, 4}}

	_, err := uc.CreateProductWithImages(ctx, usecase.ProductFields{Name: "Shirt", Price: "1", StockQuantity: "1"}, img1, &img2)
	assert.NoError(t, err)

	assert.Equal(t, []byte{1, 2}, captured.ImageData)
	assert.Equal(t, "back.png", captured.ImageName2)
	assert.Equal(t, []byte{3, 4}, captured.ImageData2)
}

func TestProductUsecase_CreateProductWithImages_EmptySecondFileIgnored(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	captured := captureSave(pRepo, model.Product{ID: 1})

	img1 := usecase.ImageFile{Name: "front.png", ContentType: "image/png", Data: []byte{1}}
	empty := usecase.ImageFile{Name: "back.png", ContentType: "image/png"}

	_, err := uc.CreateProductWithImages(ctx, usecase.ProductFields{Name: "Shirt", Price: "1", StockQuantity: "1"}, img1, &empty)
	assert.NoError(t, err)

	assert.Empty(t, captured.ImageName2)
	assert.Nil(t, captured.ImageData2)
}

// =====================
// Update（画像付き）
// =====================

func existingProduct() model.Product {
	return model.Product{
		ID:               1,
		Name:             "Shirt",
		Description:      "old",
		Category:         "wear",
		Price:            "19.99",
		StockQuantity:    "5",
		Brand:            "Acme",
		ProductAvailable: false,
		ReleaseDate:      model.DateOf(model.Today().AddDate(-1, 0, 0)),
		ImageName:        "front.jpg",
		ImageType:        "image/jpeg",
		ImageData:        []byte{0xFF, 0xD8},
	}
}

func TestProductUsecase_UpdateProductWithImages_NotFound(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, int64(999)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.UpdateProductWithImages(ctx, 999, usecase.ProductFields{}, nil, nil, nil)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	pRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductUsecase_UpdateProductWithImages_SecondImageOnlyKeepsFirst(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(existingProduct(), nil)
	captured := captureSave(pRepo, model.Product{ID: 1})

	img2 := usecase.ImageFile{Name: "back.jpg", ContentType: "image/jpeg", Data: []byte{9, 9}}

	_, err := uc.UpdateProductWithImages(ctx, 1, usecase.ProductFields{
		Name:          "Shirt2",
		Price:         "21.99",
		StockQuantity: "5",
	}, nil, nil, &img2)
	assert.NoError(t, err)

	// 1枚目はバイト単位でそのまま
	assert.Equal(t, "front.jpg", captured.ImageName)
	assert.Equal(t, "image/jpeg", captured.ImageType)
	assert.Equal(t, []byte{0xFF, 0xD8}, captured.ImageData)

	// 2枚目だけ差し替わる
	assert.Equal(t, "back.jpg", captured.ImageName2)
	assert.Equal(t, []byte{9, 9}, captured.ImageData2)

	assert.Equal(t, "Shirt2", captured.Name)
}

func TestProductUsecase_UpdateProductWithImages_AvailabilityDefaultsTrue(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(existingProduct(), nil)
	captured := captureSave(pRepo, model.Product{ID: 1})

	// 未指定（nil）は保存値falseでもtrueに戻る（元システムの挙動を踏襲）
	_, err := uc.UpdateProductWithImages(ctx, 1, usecase.ProductFields{Name: "Shirt"}, nil, nil, nil)
	assert.NoError(t, err)
	assert.True(t, captured.ProductAvailable)
}

func TestProductUsecase_UpdateProductWithImages_BrandOverwrittenWithEmpty(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(existingProduct(), nil)
	captured := captureSave(pRepo, model.Product{ID: 1})

	// 画像付きパスはbrandを常に上書き（フォーム未指定は空文字）
	_, err := uc.UpdateProductWithImages(ctx, 1, usecase.ProductFields{Name: "Shirt"}, nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, "", captured.Brand)
}

// =====================
// Update（フィールドのみ）
// =====================

func TestProductUsecase_UpdateProduct_NotFound(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, int64(999)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.UpdateProduct(ctx, 999, usecase.UpdateProductInput{})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestProductUsecase_UpdateProduct_PartialFieldsUntouched(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	existing := existingProduct()
	pRepo.On("FindByID", mock.Anything, int64(1)).Return(existing, nil)
	captured := captureSave(pRepo, model.Product{ID: 1})

	_, err := uc.UpdateProduct(ctx, 1, usecase.UpdateProductInput{
		Name:          "Shirt2",
		Price:         "21.99",
		StockQuantity: "5",
	})
	assert.NoError(t, err)

	// 5項目は無条件に上書き
	assert.Equal(t, "Shirt2", captured.Name)
	assert.Equal(t, "21.99", captured.Price)
	assert.Equal(t, "", captured.Description)
	assert.Equal(t, "", captured.Category)

	// 未指定の公開フラグ・brand・発売日は元の値のまま（trueに戻らない）
	assert.False(t, captured.ProductAvailable)
	assert.Equal(t, "Acme", captured.Brand)
	assert.Equal(t, existing.ReleaseDate, captured.ReleaseDate)

	// 画像スロットには一切触らない
	assert.Equal(t, []byte{0xFF, 0xD8}, captured.ImageData)
	assert.Equal(t, "front.jpg", captured.ImageName)
}

func TestProductUsecase_UpdateProduct_ExplicitOptionalFields(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).Return(existingProduct(), nil)
	captured := captureSave(pRepo, model.Product{ID: 1})

	available := true
	brand := "NewBrand"
	release := model.Today()

	_, err := uc.UpdateProduct(ctx, 1, usecase.UpdateProductInput{
		Name:             "Shirt",
		ProductAvailable: &available,
		Brand:            &brand,
		ReleaseDate:      &release,
	})
	assert.NoError(t, err)

	assert.True(t, captured.ProductAvailable)
	assert.Equal(t, "NewBrand", captured.Brand)
	assert.Equal(t, release, captured.ReleaseDate)
}

// =====================
// Delete / Get
// =====================

func TestProductUsecase_DeleteProduct_Existing(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("ExistsByID", mock.Anything, int64(1)).Return(true, nil)
	pRepo.On("DeleteByID", mock.Anything, int64(1)).Return(nil)

	deleted, err := uc.DeleteProduct(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, deleted)
}

func TestProductUsecase_DeleteProduct_AbsentIsNotAnError(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("ExistsByID", mock.Anything, int64(999)).Return(false, nil)

	deleted, err := uc.DeleteProduct(ctx, 999)
	assert.NoError(t, err)
	assert.False(t, deleted)
	pRepo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

func TestProductUsecase_GetProduct_NotFound(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, int64(42)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProduct(ctx, 42)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestProductUsecase_ListProducts_EmptySliceNotNil(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindAll", mock.Anything).Return([]model.Product(nil), nil)

	items, err := uc.ListProducts(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, items)
	assert.Len(t, items, 0)
}

func TestProductUsecase_ListProducts_DBError(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindAll", mock.Anything).Return([]model.Product(nil), assert.AnError)

	_, err := uc.ListProducts(ctx)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
}
