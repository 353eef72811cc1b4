package transport

import "github.com/OzgurKrks/mikrosevice/services/order/internal/models"

type CreateOrderItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	UserID uint              `json:"user_id"`
	Items  []CreateOrderItem `json:"items"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderWithUser struct {
	models.Order
	UserName string `json:"user_name"`
}
