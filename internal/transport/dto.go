package transport

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/tienda/internal/cart"
	"github.com/Skotchmaster/tienda/internal/models"
)

// ProductRequest is the body of both POST and PUT /productos. Pointers keep
// "absent" apart from zero so precio 0 and stock 0 stay valid. Numbers may
// arrive as JSON strings.
type ProductRequest struct {
	Nombre      string           `json:"nombre"      validate:"required"`
	Precio      *decimal.Decimal `json:"precio"      validate:"required"`
	Stock       *Int             `json:"stock"       validate:"required"`
	Categoria   string           `json:"categoria"   validate:"required"`
	Descripcion *string          `json:"descripcion"`
}

func (r ProductRequest) Product() models.Product {
	p := models.Product{
		Nombre:    r.Nombre,
		Categoria: r.Categoria,
	}
	if r.Precio != nil {
		p.Precio = *r.Precio
	}
	if r.Stock != nil {
		p.Stock = int(*r.Stock)
	}
	// an empty descripcion is stored as NULL, same as an absent one
	if r.Descripcion != nil && *r.Descripcion != "" {
		d := *r.Descripcion
		p.Descripcion = &d
	}
	return p
}

type AddToCartRequest struct {
	ProductoID Int `json:"producto_id" validate:"required"`
}

type CreateOrderRequest struct {
	Total *decimal.Decimal `json:"total" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CartChangedResponse struct {
	Message string      `json:"message"`
	Carrito []cart.Line `json:"carrito"`
}

type CartResponse struct {
	Carrito []cart.Line     `json:"carrito"`
	Total   decimal.Decimal `json:"total"`
}

type OrderCreatedResponse struct {
	ID    uint            `json:"id"`
	Total decimal.Decimal `json:"total"`
}

type OrderDetailResponse struct {
	models.Order
	Productos []models.OrderLine `json:"productos"`
}

type SearchResponse struct {
	Total     int64            `json:"total"`
	Productos []models.Product `json:"productos"`
}

type HealthResponse struct {
	OK bool `json:"ok"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
