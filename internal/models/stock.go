package models

// DefaultWarehouse - склад, который получает каждый новый остаток.
const DefaultWarehouse = "Основной"

// Stock: текущий остаток товара, ровно одна запись на товар.
type Stock struct {
	ProductID uint     `gorm:"primaryKey;autoIncrement:false"`
	Product   *Product `gorm:"foreignKey:ProductID"`
	Quantity  int64    `gorm:"not null;default:0"` // может уйти в минус
	MinStock  int64    `gorm:"not null;default:0"` // 0 = порог не задан
	Warehouse string   `gorm:"size:100;not null"`
}

// NewStock returns the opening stock record for a freshly created product.
func NewStock(productID uint) *Stock {
	return &Stock{
		ProductID: productID,
		Warehouse: DefaultWarehouse,
	}
}

// IsLow reports whether a threshold is configured and the quantity has reached it.
func (s Stock) IsLow() bool {
	return s.MinStock > 0 && s.Quantity <= s.MinStock
}
