package plans

import (
	"fmt"
	"strconv"

	"github.com/2beens/nutriflow/internal/profile"
)

func WorkoutPrompt(p profile.Profile) string {
	timing := ""
	if p.WorkoutTiming != "" {
		timing = fmt.Sprintf("Preferred workout time: %s.", p.WorkoutTiming)
	}

	return fmt.Sprintf(`Generate a 7-day fitness routine for %s.
    Metrics: Age %d, BMI %s, Goals: %s.
    %s
    Requirements: Each day must be 1-2 hours. Tailor exercises to the preferred time if applicable (e.g., more stretching for morning, higher intensity for afternoon).
    Return a list of 7 days.`,
		p.Name, p.Age, formatBMI(p.BMI), p.GoalsString(), timing,
	)
}

func DietPrompt(p profile.Profile) string {
	return fmt.Sprintf(`Generate a localized diet plan.
    Profile: %s diet, Region: %s.
    Goals: %s, BMI: %s.
    Provide a meal for Breakfast, Lunch, Snack, and Dinner.`,
		p.DietType, p.Region, p.GoalsString(), formatBMI(p.BMI),
	)
}

// formatBMI prints the shortest representation, so 22.0 reads "22" and 23.1 reads "23.1".
func formatBMI(bmi float64) string {
	return strconv.FormatFloat(bmi, 'f', -1, 64)
}
