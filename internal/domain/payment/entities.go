package payment

import "time"

type Payment struct {
	ID                uint      `gorm:"primaryKey;column:id" json:"id"`
	LoanID            uint      `gorm:"index;not null" json:"loan_id"`
	PaymentDate       string    `gorm:"size:10;not null" json:"payment_date"`
	ExpectedAmount    float64   `gorm:"type:decimal(10,2);not null" json:"expected_amount"`
	ActualAmount      float64   `gorm:"type:decimal(10,2);default:0" json:"actual_amount"`
	PaymentDay        int       `gorm:"not null" json:"payment_day"`
	IsWeekendAdjusted bool      `gorm:"default:false" json:"is_weekend_adjusted"`
	RecordedBy        uint      `gorm:"index;not null" json:"recorded_by"`
	Notes             string    `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
