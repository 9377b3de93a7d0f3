package domain

// Profile holds the body metrics chosen once at onboarding. They feed the
// daily energy target and never change through battles.
type Profile struct {
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
	Age      float64 `json:"age"`
	Gender   Gender  `json:"gender"`
	Activity float64 `json:"activity"` // 1.2 (sedentary) – 1.9 (athlete)
	Goal     Goal    `json:"goal"`
}
