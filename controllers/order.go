package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"allure-backend/models"
	"allure-backend/services"
	"allure-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UpdateStatusInput struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

type PaymentInput struct {
	Amount decimal.Decimal `json:"amount"`
}

type OrderController struct {
	orders   *services.OrderService
	settings *services.SettingsService
	whatsapp *services.WhatsAppService
}

func NewOrderController(orders *services.OrderService, settings *services.SettingsService, whatsapp *services.WhatsAppService) *OrderController {
	return &OrderController{orders: orders, settings: settings, whatsapp: whatsapp}
}

// CreateOrder accepts either a JSON body or a multipart form whose "order"
// field holds the JSON and whose "images_<n>" files belong to item n.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input services.CreateOrderInput
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := bindMultipartOrder(c, &input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
	} else if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Image uploads make this the slowest request we serve.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	settings, _, err := oc.settings.Get(ctx)
	if err != nil {
		respondServiceError(c, err, "Settings")
		return
	}

	result, err := oc.orders.Create(ctx, settings, input)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	c.JSON(http.StatusCreated, result)
}

func bindMultipartOrder(c *gin.Context, input *services.CreateOrderInput) error {
	form, err := c.MultipartForm()
	if err != nil {
		return err
	}
	raw := form.Value["order"]
	if len(raw) == 0 {
		return fmt.Errorf("missing order field")
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw[0])))
	if err := dec.Decode(input); err != nil {
		return err
	}

	for i := range input.Items {
		captions := form.Value["captions_"+strconv.Itoa(i)]
		for n, fh := range form.File["images_"+strconv.Itoa(i)] {
			img := services.ImageUpload{
				Filename: fh.Filename,
				Open:     func() (io.ReadCloser, error) { return fh.Open() },
			}
			if n < len(captions) {
				img.Caption = captions[n]
			}
			input.Items[i].Images = append(input.Items[i].Images, img)
		}
	}
	return nil
}

// GetOrders lists orders newest first. Supports ?status=, ?q=, ?customer_id= and ?page=
func (oc *OrderController) GetOrders(c *gin.Context) {
	filter := services.OrderFilter{
		Status: models.OrderStatus(c.Query("status")),
		Query:  c.Query("q"),
		Page:   queryPage(c),
	}
	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		filter.CustomerID = id
	}

	page, err := oc.orders.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}
	order, err := oc.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}
	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := oc.orders.ChangeStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) RecordPayment(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}
	var input PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := oc.orders.RecordPayment(c.Request.Context(), id, input.Amount)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}
	if err := oc.orders.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// DownloadSlip renders the printable order slip as a PDF attachment
func (oc *OrderController) DownloadSlip(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}
	order, err := oc.orders.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	settings, _, err := oc.settings.Get(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Settings")
		return
	}

	var buf bytes.Buffer
	if err := services.RenderOrderSlip(&buf, order, settings); err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, services.SlipFilename(order)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// ShareWhatsApp returns the prepared message and wa.me link for ?audience=
func (oc *OrderController) ShareWhatsApp(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}
	audience := services.Audience(c.DefaultQuery("audience", string(services.AudienceCustomer)))
	share, err := oc.whatsapp.Share(c.Request.Context(), id, audience)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	c.JSON(http.StatusOK, share)
}

// SendWhatsApp delivers the customer message through Twilio
func (oc *OrderController) SendWhatsApp(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}
	sid, err := oc.whatsapp.SendToCustomer(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "WhatsApp message sent", "sid": sid})
}
