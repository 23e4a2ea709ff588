package handler

import (
	"net/http"
	"strconv"

	"ecotrade-marketplace/internal/usecase/product"
	"ecotrade-marketplace/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	service   *product.Service
	projector *product.Projector
}

func NewProductHandler(service *product.Service, projector *product.Projector) *ProductHandler {
	return &ProductHandler{service: service, projector: projector}
}

func (h *ProductHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/featured", h.ListFeatured)
		products.GET("/categories", h.Categories)
		products.GET("/seller/:id", h.ListBySeller)
		products.GET("/:id", h.GetByID)
	}

	router.GET("/users/:id/stats", h.ProfileStats)
}

func (h *ProductHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.POST("", h.Create)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
	}

	router.GET("/my-products", h.ListMine)
}

func (h *ProductHandler) Create(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req product.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), sellerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Product published", result)
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product retrieved", result)
}

func (h *ProductHandler) List(c *gin.Context) {
	var req product.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Products retrieved", result)
}

func (h *ProductHandler) ListFeatured(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	result, err := h.service.ListFeatured(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Featured products retrieved", result)
}

func (h *ProductHandler) Categories(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Categories retrieved", h.service.Categories())
}

func (h *ProductHandler) ListMine(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.service.ListMine(c.Request.Context(), sellerID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Products retrieved", result)
}

func (h *ProductHandler) ListBySeller(c *gin.Context) {
	sellerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ListBySeller(c.Request.Context(), sellerID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Products retrieved", result)
}

func (h *ProductHandler) Update(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req product.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), productID, sellerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product updated", result)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	sellerID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID, sellerID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product deleted", nil)
}

func (h *ProductHandler) ProfileStats(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.projector.ProfileStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Stats retrieved", result)
}
