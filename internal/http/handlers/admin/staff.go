package admin

import (
	"strconv"

	"github.com/cctvmart/internal/http/response"
	"github.com/cctvmart/internal/service"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// ---- 员工 ----

// ListEmployees GET /employees
func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.c.StaffService.ListEmployees()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, employees)
}

// CreateEmployee POST /employees
func (h *Handler) CreateEmployee(c *gin.Context) {
	var input service.EmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid employee payload")
		return
	}
	employee, err := h.c.StaffService.CreateEmployee(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, employee)
}

// UpdateEmployee PUT /employees/:id
func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input service.EmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid employee payload")
		return
	}
	employee, err := h.c.StaffService.UpdateEmployee(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, employee)
}

// DeleteEmployee DELETE /employees/:id
func (h *Handler) DeleteEmployee(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.c.StaffService.DeleteEmployee(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, "employee deleted")
}

// ---- 供应商 ----

// ListSuppliers GET /suppliers
func (h *Handler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.c.StaffService.ListSuppliers()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, suppliers)
}

// CreateSupplier POST /suppliers
func (h *Handler) CreateSupplier(c *gin.Context) {
	var input service.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid supplier payload")
		return
	}
	supplier, err := h.c.StaffService.CreateSupplier(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, supplier)
}

// UpdateSupplier PUT /suppliers/:id
func (h *Handler) UpdateSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input service.SupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid supplier payload")
		return
	}
	supplier, err := h.c.StaffService.UpdateSupplier(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, supplier)
}

// DeleteSupplier DELETE /suppliers/:id
func (h *Handler) DeleteSupplier(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.c.StaffService.DeleteSupplier(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, "supplier deleted")
}

// ---- 技师 ----

// ListTechnicians GET /technicians
func (h *Handler) ListTechnicians(c *gin.Context) {
	technicians, err := h.c.StaffService.ListTechnicians()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, technicians)
}

// CreateTechnician POST /technicians
func (h *Handler) CreateTechnician(c *gin.Context) {
	var input service.TechnicianInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid technician payload")
		return
	}
	technician, err := h.c.StaffService.CreateTechnician(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, technician)
}

// UpdateTechnician PUT /technicians/:id
func (h *Handler) UpdateTechnician(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input service.TechnicianInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid technician payload")
		return
	}
	technician, err := h.c.StaffService.UpdateTechnician(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, technician)
}

// DeleteTechnician DELETE /technicians/:id
func (h *Handler) DeleteTechnician(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.c.StaffService.DeleteTechnician(id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, "technician deleted")
}
