package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/teabook/teabook-api/internal/application/service"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/request"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/response"
)

// SupplierHandler handles supplier HTTP requests
type SupplierHandler struct {
	supplierService *service.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

func supplierInput(req *request.SupplierRequest) *service.SupplierInput {
	return &service.SupplierInput{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Notes:         req.Notes,
	}
}

// Create handles creating a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req request.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), supplierInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier created successfully", supplier)
}

// Get handles retrieving a supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier retrieved successfully", supplier)
}

// Update handles updating a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	var req request.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), id, supplierInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier updated successfully", supplier)
}

// Delete handles removing a supplier
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.supplierService.DeleteSupplier(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier deleted successfully", nil)
}

// List handles listing all suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	suppliers, err := h.supplierService.ListSuppliers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Suppliers retrieved successfully", suppliers)
}
