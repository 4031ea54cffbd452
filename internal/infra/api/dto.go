package api

import (
	"time"

	"sweetshop/internal/domain/entity"
	"sweetshop/internal/domain/gateway"

	"github.com/google/uuid"
)

// Wire DTOs mirroring the backend's JSON payloads. The entity types
// stay free of wire concerns; every DTO maps into its entity here.

type sweetDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
}

func (d *sweetDTO) toEntity() *entity.Sweet {
	return &entity.Sweet{
		ID:          d.ID,
		Name:        d.Name,
		Category:    d.Category,
		Price:       d.Price,
		Quantity:    d.Quantity,
		Description: d.Description,
		Image:       d.Image,
	}
}

func sweetToDTO(s *entity.Sweet) *sweetDTO {
	return &sweetDTO{
		ID:          s.ID,
		Name:        s.Name,
		Category:    s.Category,
		Price:       s.Price,
		Quantity:    s.Quantity,
		Description: s.Description,
		Image:       s.Image,
	}
}

// cartItemDTO is one server cart line. The server's line id and the
// product id arrive under different names than the client view uses.
type cartItemDTO struct {
	ID          uuid.UUID `json:"id"`
	SweetID     uuid.UUID `json:"sweetId"`
	SweetName   string    `json:"sweetName"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	TotalPrice  float64   `json:"totalPrice"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
}

func (d *cartItemDTO) toEntity() *entity.CartItem {
	return &entity.CartItem{
		CartItemID:  d.ID,
		SweetID:     d.SweetID,
		Name:        d.SweetName,
		Category:    d.Category,
		Price:       d.Price,
		Quantity:    d.Quantity,
		Description: d.Description,
		Image:       d.Image,
	}
}

type authResponseDTO struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (d *authResponseDTO) toResult() *gateway.AuthResult {
	return &gateway.AuthResult{
		Token: d.Token,
		Email: d.Email,
		Role:  d.Role,
	}
}

type profileDTO struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

func (d *profileDTO) toEntity() *entity.User {
	return &entity.User{
		FullName: d.FullName,
		Email:    d.Email,
		Phone:    d.Phone,
		Address:  d.Address,
		Role:     d.Role,
	}
}

type orderItemDTO struct {
	SweetID   uuid.UUID `json:"sweetId"`
	SweetName string    `json:"sweetName"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
}

type orderDTO struct {
	ID             uuid.UUID      `json:"id"`
	Username       string         `json:"username"`
	OrderItems     []orderItemDTO `json:"orderItems"`
	TotalAmount    float64        `json:"totalAmount"`
	Status         string         `json:"status"`
	TrackingNumber string         `json:"trackingNumber"`
	OrderDate      string         `json:"orderDate"`
}

func (d *orderDTO) toEntity() *entity.Order {
	items := make([]entity.OrderItem, 0, len(d.OrderItems))
	for _, item := range d.OrderItems {
		items = append(items, entity.OrderItem{
			SweetID:  item.SweetID,
			Name:     item.SweetName,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return &entity.Order{
		ID:             d.ID,
		Username:       d.Username,
		Items:          items,
		TotalAmount:    d.TotalAmount,
		Status:         entity.OrderStatus(d.Status),
		TrackingNumber: d.TrackingNumber,
		OrderDate:      parseBackendTime(d.OrderDate),
	}
}

func ordersToEntities(dtos []orderDTO) []*entity.Order {
	orders := make([]*entity.Order, 0, len(dtos))
	for i := range dtos {
		orders = append(orders, dtos[i].toEntity())
	}

	return orders
}

// parseBackendTime handles both RFC 3339 and the backend's zone-less
// LocalDateTime serialization. Unparseable input yields the zero time.
func parseBackendTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}
