package models

import (
	"time"

	"gorm.io/gorm"
)

// Treatment is a static catalog entry for the marketing site.
type Treatment struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string    `gorm:"size:100;not null;unique;index;column:name" json:"name"`
	Category    string    `gorm:"size:50;not null;column:category" json:"category"`
	Duration    string    `gorm:"size:50;not null;column:duration" json:"duration"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	Price       float64   `gorm:"column:price;not null" json:"price"`
	Available   bool      `gorm:"column:available;not null" json:"available"`
	CreatedAt   time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (Treatment) TableName() string {
	return "treatment"
}

// TreatmentCategory is a catalog rollup: one row per category with the number
// of treatments it holds.
type TreatmentCategory struct {
	Name           string `json:"name"`
	TreatmentCount int64  `json:"treatment_count"`
}

// SeedTreatments inserts the treatment catalog into the database
func SeedTreatments(db *gorm.DB) error {
	initialTreatments := []Treatment{
		{Name: "Panchakarma Detox", Category: "Detoxification", Duration: "21 days", Description: "Complete body detoxification through traditional Panchakarma methods", Price: 25000, Available: true},
		{Name: "Herbal Consultation", Category: "Consultation", Duration: "1 hour", Description: "Personalized herbal medicine consultation", Price: 2000, Available: true},
		{Name: "Stress Relief Therapy", Category: "Mental Health", Duration: "90 minutes", Description: "Specialized therapy for stress management and mental wellness", Price: 3500, Available: true},
		{Name: "Skin & Hair Treatment", Category: "Beauty & Wellness", Duration: "60 minutes", Description: "Natural Ayurvedic treatment for skin and hair problems", Price: 2500, Available: true},
		{Name: "Women's Health Package", Category: "Women's Health", Duration: "2 hours", Description: "Comprehensive women's health consultation and treatment", Price: 4000, Available: true},
		{Name: "Diet & Nutrition Plan", Category: "Nutrition", Duration: "1 hour", Description: "Dosha-based dietary assessment and personalized nutrition plan", Price: 1800, Available: true},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, treatment := range initialTreatments {
			if err := tx.FirstOrCreate(&treatment, Treatment{Name: treatment.Name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
