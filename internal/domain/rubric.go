package domain

// DefaultRubric mirrors the official challenge rubric: six categories
// covering the five steps of the actuarial process plus communication.
func DefaultRubric() Rubric {
	return Rubric{Categories: []Category{
		{Name: "Project Definition", Weight: 0.15},
		{Name: "Data Identification & Assessment", Weight: 0.20},
		{Name: "Mathematical Modeling", Weight: 0.25},
		{Name: "Risk Analysis", Weight: 0.20},
		{Name: "Recommendations", Weight: 0.15},
		{Name: "Communication & Clarity", Weight: 0.05},
	}}
}
