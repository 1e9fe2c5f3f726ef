package fixtures

import (
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/plan"
	"github.com/shopspring/decimal"
)

// GetDefaultPlans returns the starter plan catalog seeded into a new
// branch. Prices are in MXN; owners adjust them from the plan settings.
func GetDefaultPlans(branchID string) []plan.Plan {
	return []plan.Plan{
		{
			BranchID:       branchID,
			Name:           "Gimnasio",
			Description:    "Acceso general al area de pesas y cardio",
			DurationMonths: 1,
			Price:          decimal.NewFromInt(400),
		},
		{
			BranchID:       branchID,
			Name:           "Kickboxing",
			Description:    "Clases de kickboxing, horario vespertino",
			DurationMonths: 1,
			Price:          decimal.NewFromInt(450),
		},
		{
			BranchID:       branchID,
			Name:           "Alberca 4 dias",
			Description:    "Alberca, cuatro dias por semana",
			DurationMonths: 1,
			Price:          decimal.NewFromInt(800),
		},
		{
			BranchID:       branchID,
			Name:           "Regadera",
			Description:    "Uso de regaderas",
			DurationMonths: 1,
			Price:          decimal.NewFromInt(100),
		},
	}
}
