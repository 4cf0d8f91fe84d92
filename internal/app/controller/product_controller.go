package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/service"
	apperrors "github.com/tanawit/petnest-backend/internal/errors"
	"github.com/tanawit/petnest-backend/internal/middleware"
	"github.com/tanawit/petnest-backend/internal/scheduler"
	"github.com/tanawit/petnest-backend/internal/storage"
	"github.com/tanawit/petnest-backend/pkg/redis"
	"github.com/xuri/excelize/v2"
)

type ProductController struct {
	productService service.ProductService
	store          *storage.LocalStorage
}

func NewProductController(productService service.ProductService, store *storage.LocalStorage) *ProductController {
	return &ProductController{
		productService: productService,
		store:          store,
	}
}

type productOptionPayload struct {
	Size  string  `json:"size" binding:"required"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// GetProducts lists products, optionally filtered
// GET /api/v1/products?search=&category=&animalType=&priceBucket=
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.ProductSearchOptions{
		Keyword:    c.Query("search"),
		Category:   c.Query("category"),
		AnimalType: c.Query("animalType"),
		Bucket:     service.PriceBucket(c.Query("priceBucket")),
	}

	var (
		products []model.Product
		err      error
	)
	if opts.Keyword == "" && opts.Category == "" && opts.AnimalType == "" && opts.Bucket == "" {
		products, err = ctrl.productService.GetAll()
	} else {
		products, err = ctrl.productService.Search(opts)
	}
	if err != nil {
		log.Error("Failed to list products", err)
		apperrors.InternalError(c, "Failed to list products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns one product with its options
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// GetPopularProducts returns the best sellers, served from the Redis
// cache when warm.
// GET /api/v1/products/popular
func (ctrl *ProductController) GetPopularProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if redis.GetClient() != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		var cached []model.Product
		hit, err := redis.GetJSON(ctx, scheduler.PopularProductsCacheKey, &cached)
		if err == nil && hit {
			c.JSON(http.StatusOK, gin.H{
				"products": cached,
				"count":    len(cached),
				"cached":   true,
			})
			return
		}
	}

	products, err := ctrl.productService.GetPopular(10)
	if err != nil {
		log.Error("Failed to fetch popular products", err)
		apperrors.InternalError(c, "Failed to fetch popular products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// CreateProduct creates a product from a multipart form (admin)
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	input, ok := ctrl.bindProductForm(c, true)
	if !ok {
		return
	}

	product, err := ctrl.productService.Create(*input)
	if err != nil {
		ctrl.respondProductError(c, err)
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct updates a product from a multipart form (admin)
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	existing, err := ctrl.productService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	input, ok := ctrl.bindProductForm(c, false)
	if !ok {
		return
	}

	product, err := ctrl.productService.Update(id, *input)
	if err != nil {
		ctrl.respondProductError(c, err)
		return
	}

	// New image replaces the old file on disk
	if input.ImageURL != "" && existing.ImageURL != "" && existing.ImageURL != input.ImageURL {
		ctrl.store.Delete(existing.ImageURL)
	}

	log.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DeleteProduct removes a product (admin)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch product")
		return
	}

	if err := ctrl.productService.Delete(id); err != nil {
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "Failed to delete product")
		return
	}

	if product.ImageURL != "" {
		ctrl.store.Delete(product.ImageURL)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}

// ExportProducts streams the catalog as an XLSX workbook (admin)
// GET /api/v1/products/export
func (ctrl *ProductController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.productService.GetAll()
	if err != nil {
		log.Error("Failed to load products for export", err)
		apperrors.InternalError(c, "Failed to export products")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Products"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Category", "Animal Type", "Size", "Price", "Stock", "Total Purchases", "Active"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, p := range products {
		for _, opt := range p.Options {
			values := []interface{}{
				p.ID, p.Name, p.Category, p.AnimalType,
				opt.Size, opt.Price, opt.Stock, p.TotalPurchases, p.Status,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		log.Error("Failed to write export workbook", err)
	}
}

// bindProductForm reads the multipart product form. requireAll
// enforces the create-time mandatory fields.
func (ctrl *ProductController) bindProductForm(c *gin.Context, requireAll bool) (*service.ProductInput, bool) {
	log := middleware.GetLoggerFromContext(c)

	input := service.ProductInput{
		Name:        c.PostForm("name"),
		About:       c.PostForm("about"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		AnimalType:  c.PostForm("animalType"),
	}

	if requireAll && (input.Name == "" || input.Category == "") {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Name and category are required")
		return nil, false
	}

	if statusValue := c.PostForm("status"); statusValue != "" {
		status, err := strconv.ParseBool(statusValue)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid status value")
			return nil, false
		}
		input.Status = &status
	}

	if optionsJSON := c.PostForm("options"); optionsJSON != "" {
		var payload []productOptionPayload
		if err := json.Unmarshal([]byte(optionsJSON), &payload); err != nil {
			log.Warn("Invalid options payload", map[string]interface{}{
				"error": err.Error(),
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid options payload")
			return nil, false
		}
		for _, p := range payload {
			input.Options = append(input.Options, service.OptionInput{
				Size:  p.Size,
				Price: p.Price,
				Stock: p.Stock,
			})
		}
	} else if requireAll {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "At least one option is required")
		return nil, false
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		url, err := ctrl.store.SaveImage(fileHeader)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrInvalidFileType):
				apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Unsupported image type")
			case errors.Is(err, storage.ErrFileTooLarge):
				apperrors.BadRequest(c, apperrors.UploadFileTooLarge, "Image exceeds size limit")
			default:
				log.Error("Failed to store uploaded image", err)
				apperrors.InternalError(c, "Failed to store image")
			}
			return nil, false
		}
		input.ImageURL = url
	} else if requireAll {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Product image is required")
		return nil, false
	}

	return &input, true
}

func (ctrl *ProductController) respondProductError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrDuplicateOptionSize):
		apperrors.BadRequest(c, apperrors.ProductDuplicateSize, "Duplicate option size")
	case errors.Is(err, service.ErrInvalidOption):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid option payload")
	default:
		log.Error("Product operation failed", err)
		apperrors.ParseAndRespond(c, err, "product")
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}
