// Package orderrepo persists the order aggregate and its line items with GORM.
package orderrepo

import (
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Line items live in order_items and
// are written once, when the order is created.
type OrderDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MemberID           uuid.UUID       `gorm:"type:uuid;index"`
	TotalAmount        decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	DiscountAmount     decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Currency           string          `gorm:"type:char(3);not null"`
	Status             string          `gorm:"type:varchar(16);not null;index"`
	CancellationReason string          `gorm:"type:text"`
	CreatedAt          time.Time       `gorm:"not null"`
	ConfirmedAt        *time.Time      `gorm:"default:null"`
	ShippedAt          *time.Time      `gorm:"default:null"`
	DeliveredAt        *time.Time      `gorm:"default:null"`
	CancelledAt        *time.Time      `gorm:"default:null"`
	Items              []OrderItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order. Position keeps the checkout order.
type OrderItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey;autoIncrement:false"`
	BookID    uuid.UUID       `gorm:"type:uuid;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(19,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	items := o.LineItems()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			OrderID:   o.ID().Bytes(),
			Position:  i,
			BookID:    item.BookID().Bytes(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Amount(),
		})
	}

	ts := o.Timestamps()
	return OrderDTO{
		ID:                 o.ID().Bytes(),
		MemberID:           o.MemberID().Bytes(),
		TotalAmount:        o.TotalAmount().Amount(),
		DiscountAmount:     o.DiscountAmount().Amount(),
		Currency:           o.Currency(),
		Status:             o.Status().String(),
		CancellationReason: o.CancellationReason(),
		CreatedAt:          ts.CreatedAt,
		ConfirmedAt:        ts.ConfirmedAt,
		ShippedAt:          ts.ShippedAt,
		DeliveredAt:        ts.DeliveredAt,
		CancelledAt:        ts.CancelledAt,
		Items:              itemDTOs,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	memberID, err := kernel.UUIDFromGoogle(dto.MemberID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalAmount, dto.Currency)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.DiscountAmount, dto.Currency)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := itemToDomain(itemDTO, dto.Currency)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrder(id, memberID, items, total, discount, status, dto.CancellationReason, order.Timestamps{
		CreatedAt:   dto.CreatedAt,
		ConfirmedAt: dto.ConfirmedAt,
		ShippedAt:   dto.ShippedAt,
		DeliveredAt: dto.DeliveredAt,
		CancelledAt: dto.CancelledAt,
	})
}

func itemToDomain(dto OrderItemDTO, currency string) (order.LineItem, error) {
	bookID, err := kernel.UUIDFromGoogle(dto.BookID)
	if err != nil {
		return order.LineItem{}, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice, currency)
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(bookID, dto.Quantity, price)
}
