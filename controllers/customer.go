package controllers

import (
	"net/http"
	"strings"

	"allure-backend/models"
	"allure-backend/services"
	"allure-backend/utils"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	customers *services.CustomerService
}

func NewCustomerController(customers *services.CustomerService) *CustomerController {
	return &CustomerController{customers: customers}
}

// CreateCustomer adds a customer with an optional measurement profile
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var input services.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := cc.customers.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists customers, newest first, optionally filtered by ?q=
func (cc *CustomerController) GetCustomers(c *gin.Context) {
	page, err := cc.customers.List(c.Request.Context(), strings.TrimSpace(c.Query("q")), queryPage(c))
	if err != nil {
		respondServiceError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetCustomer returns a customer together with their orders
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}
	customer, err := cc.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer replaces the whole customer record
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}
	var input services.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customer, err := cc.customers.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes the customer and everything under them
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}
	if err := cc.customers.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// GetMeasurementPrefill seeds the order form for ?garment_type=
func (cc *CustomerController) GetMeasurementPrefill(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}
	garment := models.GarmentType(c.DefaultQuery("garment_type", string(models.GarmentOther)))
	prefill, err := cc.customers.Prefill(c.Request.Context(), id, garment)
	if err != nil {
		respondServiceError(c, err, "Customer")
		return
	}
	c.JSON(http.StatusOK, prefill)
}
