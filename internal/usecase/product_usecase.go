package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// ImageFileはアップロードされた画像1枚分（ファイル名・MIMEタイプ・中身）。
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// 中身が空のファイルは「未指定」と同じ扱い。
func (f *ImageFile) isPresent() bool {
	return f != nil && len(f.Data) > 0
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// POST /products（JSONのみ、画像なし）の入力DTO。
// ポインタのフィールドは「未指定」を区別するため。
type CreateProductInput struct {
	Name             string
	Description      string
	Category         string
	Price            string
	StockQuantity    string
	Brand            *string
	ProductAvailable *bool
	ReleaseDate      *model.Date
}

// 画像付きパスで共通のテキストフィールド。
type ProductFields struct {
	Name          string
	Description   string
	Category      string
	Price         string
	StockQuantity string
	Brand         string
}

// JSONのみの作成。brandは空文字、公開フラグはtrue、発売日は今日がデフォルト。
func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	brand := ""
	if in.Brand != nil {
		brand = *in.Brand
	}

	available := true
	if in.ProductAvailable != nil {
		available = *in.ProductAvailable
	}

	release := model.Today()
	if in.ReleaseDate != nil {
		release = *in.ReleaseDate
	}

	p := model.Product{
		Name:             in.Name,
		Description:      in.Description,
		Category:         in.Category,
		Price:            in.Price,
		StockQuantity:    in.StockQuantity,
		Brand:            brand,
		ProductAvailable: available,
		ReleaseDate:      release,
	}

	saved, err := u.productRepo.Save(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return saved, nil
}

// 画像付きの新規作成。img1は呼び出し側（API境界）で必須チェック済み。
// img2は任意で、中身があるときだけ2枚目スロットに入れる。
func (u *ProductUsecase) CreateProductWithImages(ctx context.Context, f ProductFields, img1 ImageFile, img2 *ImageFile) (model.Product, error) {
	p := model.Product{
		Name:             f.Name,
		Description:      f.Description,
		Category:         f.Category,
		Price:            f.Price,
		StockQuantity:    f.StockQuantity,
		Brand:            f.Brand,
		ProductAvailable: true,
		ReleaseDate:      model.Today(),
	}

	if img1.isPresent() {
		p.ImageName = img1.Name
		p.ImageType = img1.ContentType
		p.ImageData = img1.Data
	}

	if img2.isPresent() {
		p.ImageName2 = img2.Name
		p.ImageType2 = img2.ContentType
		p.ImageData2 = img2.Data
	}

	saved, err := u.productRepo.Save(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return saved, nil
}

// 画像付きの更新。テキストフィールドは常に上書き、公開フラグは未指定ならtrue。
// 画像スロットは独立していて、新しいファイルが来たスロットだけ差し替える。
func (u *ProductUsecase) UpdateProductWithImages(ctx context.Context, id int64, f ProductFields, available *bool, img1, img2 *ImageFile) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p.Name = f.Name
	p.Description = f.Description
	p.Category = f.Category
	p.Price = f.Price
	p.StockQuantity = f.StockQuantity
	p.Brand = f.Brand

	p.ProductAvailable = true
	if available != nil {
		p.ProductAvailable = *available
	}

	if img1.isPresent() {
		p.ImageName = img1.Name
		p.ImageType = img1.ContentType
		p.ImageData = img1.Data
	}

	if img2.isPresent() {
		p.ImageName2 = img2.Name
		p.ImageType2 = img2.ContentType
		p.ImageData2 = img2.Data
	}

	saved, err := u.productRepo.Save(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return saved, nil
}

// PUT /products/:id（JSONのみ）の入力DTO。
type UpdateProductInput struct {
	Name             string
	Description      string
	Category         string
	Price            string
	StockQuantity    string
	ProductAvailable *bool
	Brand            *string
	ReleaseDate      *model.Date
}

// フィールドのみの更新。画像スロットには一切触らない。
// 公開フラグ・brand・発売日はペイロードにあるときだけ上書き（部分更新）。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, id int64, in UpdateProductInput) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Category = in.Category
	p.Price = in.Price
	p.StockQuantity = in.StockQuantity

	if in.ProductAvailable != nil {
		p.ProductAvailable = *in.ProductAvailable
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.ReleaseDate != nil {
		p.ReleaseDate = *in.ReleaseDate
	}

	saved, err := u.productRepo.Save(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return saved, nil
}

// 削除。行があれば消してtrue、なければfalse（エラーにしない）。
func (u *ProductUsecase) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	exists, err := u.productRepo.ExistsByID(ctx, id)
	if err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !exists {
		return false, nil
	}

	err = u.productRepo.DeleteByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return true, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.FindAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}
