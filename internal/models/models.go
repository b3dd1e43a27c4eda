package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	Nombre      string          `gorm:"size:255;not null"            json:"nombre"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"precio"`
	Stock       int             `gorm:"not null"                     json:"stock"`
	Categoria   string          `gorm:"size:100;not null"            json:"categoria"`
	Descripcion *string         `gorm:"type:text"                    json:"descripcion"`
}

func (Product) TableName() string {
	return "productos"
}

type Order struct {
	ID    uint            `gorm:"primaryKey;autoIncrement"             json:"id"`
	Total decimal.Decimal `gorm:"type:decimal(10,2);not null"          json:"total"`
	Fecha time.Time       `gorm:"column:fecha;autoCreateTime;not null" json:"fecha"`
}

func (Order) TableName() string {
	return "ordenes"
}

type OrderLine struct {
	OrdenID    uint `gorm:"column:orden_id;primaryKey;autoIncrement:false"    json:"orden_id"`
	ProductoID uint `gorm:"column:producto_id;primaryKey;autoIncrement:false" json:"producto_id"`
	Cantidad   int  `gorm:"not null"                                          json:"cantidad"`
}

func (OrderLine) TableName() string {
	return "orden_productos"
}

// All is the migration set, parents first.
func All() []any {
	return []any{&Product{}, &Order{}, &OrderLine{}}
}
