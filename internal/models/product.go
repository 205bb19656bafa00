package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:200;not null"`
	SKU         string    `gorm:"column:sku;size:50;index"` // артикул, уникальность не проверяется
	Category    string    `gorm:"size:100;index"`
	Unit        string    `gorm:"size:20;not null"` // шт, кг, упак и т.п.
	SupplierID  *uint     `gorm:"index"`
	Supplier    *Supplier `gorm:"foreignKey:SupplierID"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
}
