package profile

import "math"

type Category string

const (
	CategoryUnderweight Category = "Underweight"
	CategoryNormal      Category = "Normal"
	CategoryOverweight  Category = "Overweight"
	CategoryObese       Category = "Obese"
)

func (c Category) String() string {
	return string(c)
}

// CalculateBMI returns weight / (height/100)^2 rounded to one decimal place.
// Height is in cm, weight in kg.
func CalculateBMI(height, weight float64) float64 {
	heightInMeters := height / 100
	return roundTo(weight/(heightInMeters*heightInMeters), 1)
}

// CategoryFor maps a BMI value to its category; each bound is exclusive on the upper side.
func CategoryFor(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
