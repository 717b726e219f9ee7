package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/app/services"
	"github.com/yigit/unidesk/internal/middleware"
	"github.com/yigit/unidesk/internal/pkg/helpers"
	"github.com/yigit/unidesk/internal/query"
)

// CRUDHandlers is the handler set every collection exposes
type CRUDHandlers interface {
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
	ReplaceAll(ctx *gin.Context)
}

// CollectionController serves one catalog collection
type CollectionController[T models.Entity] struct {
	service services.CatalogService[T]
	filters []string
}

// NewCollectionController creates a controller accepting the schema's filters as
// query parameters
func NewCollectionController[T models.Entity](service services.CatalogService[T], schema query.Schema[T]) *CollectionController[T] {
	return &CollectionController[T]{
		service: service,
		filters: schema.FilterNames(),
	}
}

// List handles GET /{collection}
func (c *CollectionController[T]) List(ctx *gin.Context) {
	items := c.service.List(ctx, helpers.ParseCriteria(ctx, c.filters))
	respondList(ctx, items)
}

// Get handles GET /{collection}/:id
func (c *CollectionController[T]) Get(ctx *gin.Context) {
	item, err := c.service.Get(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(item))
}

// Create handles POST /{collection}
func (c *CollectionController[T]) Create(ctx *gin.Context) {
	var item T
	if !middleware.DecodeJSON(ctx, &item) {
		return
	}

	created, err := c.service.Create(ctx, item)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created))
}

// Update handles PUT /{collection}/:id
func (c *CollectionController[T]) Update(ctx *gin.Context) {
	var item T
	if !middleware.DecodeJSON(ctx, &item) {
		return
	}

	updated, err := c.service.Update(ctx, ctx.Param("id"), item)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// Delete handles DELETE /{collection}/:id
func (c *CollectionController[T]) Delete(ctx *gin.Context) {
	if err := c.service.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Record deleted"}))
}

// ReplaceAll handles PUT /{collection}
func (c *CollectionController[T]) ReplaceAll(ctx *gin.Context) {
	var items []T
	if !middleware.DecodeJSON(ctx, &items) {
		return
	}

	replaced, err := c.service.ReplaceAll(ctx, items)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(replaced))
}

// respondList writes items whole, or one page of them when page or size is given
func respondList[T any](ctx *gin.Context, items []T) {
	page, size, paged := helpers.ParsePaginationParams(ctx)
	if !paged {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items))
		return
	}
	pageItems, info := helpers.Paginate(items, page, size)
	ctx.JSON(http.StatusOK, dto.NewPagedResponse(pageItems, info))
}
