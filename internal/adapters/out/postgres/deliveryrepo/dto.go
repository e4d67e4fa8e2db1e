// Package deliveryrepo persists the delivery aggregate with GORM.
package deliveryrepo

import (
	"time"

	"backoffice/internal/core/domain/model/delivery"
	"backoffice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type DeliveryDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	RecipientName    string     `gorm:"type:varchar(100);not null"`
	Address          AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Status           string     `gorm:"type:varchar(20);not null;index"`
	TrackingNumber   string     `gorm:"type:varchar(50)"`
	CourierCompany   string     `gorm:"type:varchar(50)"`
	CreatedAt        time.Time  `gorm:"not null"`
	ShippedAt        *time.Time `gorm:"default:null"`
	DeliveredAt      *time.Time `gorm:"default:null"`
	StatusUpdatedAt  *time.Time `gorm:"default:null"`
	AddressChangedAt *time.Time `gorm:"default:null"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// AddressDTO is the shipping address embedded in the deliveries table.
type AddressDTO struct {
	ZipCode string `gorm:"type:varchar(10);not null"`
	Street  string `gorm:"type:varchar(200);not null"`
	Detail  string `gorm:"type:varchar(200)"`
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	ts := d.Timestamps()
	return DeliveryDTO{
		ID:            d.ID().Bytes(),
		OrderID:       d.OrderID().Bytes(),
		RecipientName: d.RecipientName(),
		Address: AddressDTO{
			ZipCode: d.Address().ZipCode(),
			Street:  d.Address().Street(),
			Detail:  d.Address().Detail(),
		},
		Status:           d.Status().String(),
		TrackingNumber:   d.TrackingNumber(),
		CourierCompany:   d.CourierCompany(),
		CreatedAt:        ts.CreatedAt,
		ShippedAt:        ts.ShippedAt,
		DeliveredAt:      ts.DeliveredAt,
		StatusUpdatedAt:  ts.StatusUpdatedAt,
		AddressChangedAt: ts.AddressChangedAt,
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromGoogle(dto.OrderID)
	if err != nil {
		return nil, err
	}
	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	address, err := kernel.NewAddress(dto.Address.ZipCode, dto.Address.Street, dto.Address.Detail)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(id, orderID, dto.RecipientName, address, status,
		dto.TrackingNumber, dto.CourierCompany, delivery.Timestamps{
			CreatedAt:        dto.CreatedAt,
			ShippedAt:        dto.ShippedAt,
			DeliveredAt:      dto.DeliveredAt,
			StatusUpdatedAt:  dto.StatusUpdatedAt,
			AddressChangedAt: dto.AddressChangedAt,
		})
}
