package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vyshnav-v/food-delivery/app/services"
	"github.com/vyshnav-v/food-delivery/pkg/bind"
	"github.com/vyshnav-v/food-delivery/pkg/collection"
	"github.com/vyshnav-v/food-delivery/pkg/response"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{service: services.NewOrderService()}
}

// Index lists orders with pagination, filtering, and the status summary
// computed over the same filter as the page.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := c.service.List(r.Context(), r.URL.Query())
	if err != nil {
		response.Error(w, err, "Failed to fetch orders")
		return
	}
	response.List(w, page.Orders, page.Pagination, page.Stats)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	order, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err, "Failed to fetch order")
		return
	}
	response.Success(w, order)
}

type orderItemRequest struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1"`
}

type placeOrderRequest struct {
	User  string             `json:"user" validate:"required"`
	Items []orderItemRequest `json:"items" validate:"required"`
}

// Store places a new order. Stock is taken atomically per item; a failure
// at any point restores what was already taken and rejects the order.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var body placeOrderRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFail(w, errs)
		return
	}

	items := collection.Map(body.Items, func(it orderItemRequest) services.OrderItemInput {
		return services.OrderItemInput{Product: it.Product, Quantity: it.Quantity}
	})

	order, err := c.service.Place(r.Context(), services.PlaceOrderInput{
		User:  body.User,
		Items: items,
	})
	if err != nil {
		response.Error(w, err, "Failed to place order")
		return
	}
	services.InvalidateDashboard()
	response.Created(w, "Order placed successfully", order)
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,in=pending,confirmed,delivered,cancelled"`
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body orderStatusRequest
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFail(w, errs)
		return
	}

	order, err := c.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		response.Error(w, err, "Failed to update order")
		return
	}
	services.InvalidateDashboard()
	response.SuccessMessage(w, "Order status updated successfully", order)
}

func (c *OrderController) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err, "Failed to delete order")
		return
	}
	services.InvalidateDashboard()
	response.SuccessMessage(w, "Order deleted successfully", nil)
}
