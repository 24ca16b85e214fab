package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	slog.Error("unhandled error", "path", c.Path(), "err", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /api/products の商品API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 商品ルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/products")

	g.POST("", h.create)
	g.POST("/with-image", h.createWithImage)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)
	g.PUT("/:id/with-image", h.updateWithImage)
	g.DELETE("/:id", h.delete)
}

// POST /api/products（JSONのみ）のリクエストボディ。
// ポインタのフィールドは「未指定」をデフォルト適用の対象にするため。
type productRequest struct {
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	Category         string      `json:"category"`
	Price            string      `json:"price"`
	StockQuantity    string      `json:"stockQuantity"`
	Brand            *string     `json:"brand"`
	ProductAvailable *bool       `json:"productAvailable"`
	ReleaseDate      *model.Date `json:"releaseDate"`
}

func (h *ProductHandler) create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		Price:            req.Price,
		StockQuantity:    req.StockQuantity,
		Brand:            req.Brand,
		ProductAvailable: req.ProductAvailable,
		ReleaseDate:      req.ReleaseDate,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

// multipartのファイルを読み切ってImageFileにする。
func readImageFile(fh *multipart.FileHeader) (usecase.ImageFile, error) {
	f, err := fh.Open()
	if err != nil {
		return usecase.ImageFile{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return usecase.ImageFile{}, err
	}

	return usecase.ImageFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// 任意ファイル。フォームに無ければnil、あれば読み込む。
func optionalImageFile(c echo.Context, field string) (*usecase.ImageFile, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil || fh.Size == 0 {
		return nil, nil
	}
	img, err := readImageFile(fh)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func formFields(c echo.Context) usecase.ProductFields {
	return usecase.ProductFields{
		Name:          c.FormValue("name"),
		Description:   c.FormValue("description"),
		Category:      c.FormValue("category"),
		Price:         c.FormValue("price"),
		StockQuantity: c.FormValue("stockQuantity"),
		Brand:         c.FormValue("brand"), // 未指定なら空文字
	}
}

func (h *ProductHandler) createWithImage(c echo.Context) error {
	f := formFields(c)

	//必須チェック
	if strings.TrimSpace(f.Name) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Product name is required"})
	}
	if strings.TrimSpace(f.Price) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Price is required"})
	}
	if strings.TrimSpace(f.StockQuantity) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Stock quantity is required"})
	}

	fh, err := c.FormFile("file")
	if err != nil || fh == nil || fh.Size == 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "At least the first product image is required"})
	}

	img1, err := readImageFile(fh)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to upload image: " + err.Error()})
	}

	img2, err := optionalImageFile(c, "file2")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to upload image: " + err.Error()})
	}

	p, err := h.uc.CreateProductWithImages(c.Request().Context(), f, img1, img2)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) updateWithImage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	f := formFields(c)

	// productAvailableは任意。未指定はusecase側でtrueになる。
	var available *bool
	if v := c.FormValue("productAvailable"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid productAvailable"})
		}
		available = &b
	}

	img1, err := optionalImageFile(c, "file")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to upload image: " + err.Error()})
	}

	img2, err := optionalImageFile(c, "file2")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to upload image: " + err.Error()})
	}

	p, err := h.uc.UpdateProductWithImages(c.Request().Context(), id, f, available, img1, img2)
	if errors.Is(err, repo.ErrNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) list(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetProduct(c.Request().Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.UpdateProduct(c.Request().Context(), id, usecase.UpdateProductInput{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		Price:            req.Price,
		StockQuantity:    req.StockQuantity,
		ProductAvailable: req.ProductAvailable,
		Brand:            req.Brand,
		ReleaseDate:      req.ReleaseDate,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	deleted, err := h.uc.DeleteProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if !deleted {
		return c.NoContent(http.StatusNotFound)
	}

	return c.NoContent(http.StatusNoContent)
}
