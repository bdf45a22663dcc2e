package model

// NutritionData holds the free-tier nutrient fields, each a non-negative
// running sum. Missing upstream values contribute zero, never null.
type NutritionData struct {
	ServingSizeG        float64 `json:"serving_size_g"`
	FatTotalG           float64 `json:"fat_total_g"`
	FatSaturatedG       float64 `json:"fat_saturated_g"`
	CarbohydratesTotalG float64 `json:"carbohydrates_total_g"`
	FiberG              float64 `json:"fiber_g"`
	SugarG              float64 `json:"sugar_g"`
	SodiumMg            float64 `json:"sodium_mg"`
	PotassiumMg         float64 `json:"potassium_mg"`
	CholesterolMg       float64 `json:"cholesterol_mg"`
}

// Add accumulates other into d. The field list is fixed and enumerated;
// there is no name-based field lookup anywhere in the aggregation path.
func (d *NutritionData) Add(other NutritionData) {
	d.ServingSizeG += other.ServingSizeG
	d.FatTotalG += other.FatTotalG
	d.FatSaturatedG += other.FatSaturatedG
	d.CarbohydratesTotalG += other.CarbohydratesTotalG
	d.FiberG += other.FiberG
	d.SugarG += other.SugarG
	d.SodiumMg += other.SodiumMg
	d.PotassiumMg += other.PotassiumMg
	d.CholesterolMg += other.CholesterolMg
}
