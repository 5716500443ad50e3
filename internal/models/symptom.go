package models

const (
	SymptomCategoryPhysical  = "physical"
	SymptomCategoryEmotional = "emotional"
	SymptomCategoryDigestive = "digestive"
	SymptomCategorySkin      = "skin"
	SymptomCategoryOther     = "other"
)

// Symptom is static reference data shared by all users.
type Symptom struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Category    string `gorm:"not null" json:"category"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
}

// DefaultSymptomCatalog seeds the symptoms table on first boot.
func DefaultSymptomCatalog() []Symptom {
	return []Symptom{
		{Name: "Cramps", Category: SymptomCategoryPhysical},
		{Name: "Headache", Category: SymptomCategoryPhysical},
		{Name: "Back pain", Category: SymptomCategoryPhysical},
		{Name: "Breast tenderness", Category: SymptomCategoryPhysical},
		{Name: "Fatigue", Category: SymptomCategoryPhysical},
		{Name: "Insomnia", Category: SymptomCategoryPhysical},
		{Name: "Mood swings", Category: SymptomCategoryEmotional},
		{Name: "Irritability", Category: SymptomCategoryEmotional},
		{Name: "Anxiety", Category: SymptomCategoryEmotional},
		{Name: "Food cravings", Category: SymptomCategoryEmotional},
		{Name: "Bloating", Category: SymptomCategoryDigestive},
		{Name: "Nausea", Category: SymptomCategoryDigestive},
		{Name: "Diarrhea", Category: SymptomCategoryDigestive},
		{Name: "Constipation", Category: SymptomCategoryDigestive},
		{Name: "Acne", Category: SymptomCategorySkin},
		{Name: "Dry skin", Category: SymptomCategorySkin},
		{Name: "Spotting", Category: SymptomCategoryOther},
	}
}
