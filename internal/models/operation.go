package models

import "time"

type OperationType string

const (
	OperationIn     OperationType = "in"     // приход
	OperationOut    OperationType = "out"    // расход
	OperationAdjust OperationType = "adjust" // списание
	OperationMove   OperationType = "move"   // перемещение
)

// OperationTypes lists the types in the order the forms show them.
var OperationTypes = []OperationType{OperationIn, OperationOut, OperationAdjust, OperationMove}

func (t OperationType) Valid() bool {
	switch t {
	case OperationIn, OperationOut, OperationAdjust, OperationMove:
		return true
	}
	return false
}

func (t OperationType) Label() string {
	switch t {
	case OperationIn:
		return "Приход"
	case OperationOut:
		return "Расход"
	case OperationAdjust:
		return "Списание"
	case OperationMove:
		return "Перемещение"
	}
	return string(t)
}

// Delta returns the signed change an operation of this type and quantity makes
// to the product's stock. Transfers only record warehouse labels.
func (t OperationType) Delta(quantity int64) int64 {
	switch t {
	case OperationIn:
		return quantity
	case OperationOut, OperationAdjust:
		return -quantity
	}
	return 0
}

// Operation: запись журнала движения товара. Не редактируется и не удаляется.
type Operation struct {
	ID            uint          `gorm:"primaryKey"`
	ProductID     uint          `gorm:"index;not null"`
	Product       *Product      `gorm:"foreignKey:ProductID"`
	Type          OperationType `gorm:"size:10;index;not null"`
	Quantity      int64         `gorm:"not null"` // всегда > 0, знак задаёт Type
	Date          time.Time     `gorm:"index;not null"`
	FromWarehouse string        `gorm:"size:100"`
	ToWarehouse   string        `gorm:"size:100"`
	Responsible   string        `gorm:"size:100"`
	Note          string        `gorm:"type:text"`
	CreatedAt     time.Time
}
