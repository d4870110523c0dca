package timeclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shawnlecompte2-web/LogiVrac/model"
)

func TestActivePlaque(t *testing.T) {
	logs := []model.PunchLog{
		{EmployeeName: "Denis Boulet", Type: model.PunchIn, Timestamp: "03/06/2024, 06:00:00", Plaque: "L-11111"},
		{EmployeeName: "Denis Boulet", Type: model.PunchOut, Timestamp: "03/06/2024, 12:00:00"},
		{EmployeeName: "Denis Boulet", Type: model.PunchIn, Timestamp: "03/06/2024, 13:00:00", Plaque: "L-12345"},
		{EmployeeName: "Marc Côté", Type: model.PunchIn, Timestamp: "03/06/2024, 14:00:00", Plaque: "L-99999"},
	}

	assert.Equal(t, "L-12345", ActivePlaque(logs, "Denis Boulet", "2024-06-03"))
	assert.Equal(t, "", ActivePlaque(logs, "Denis Boulet", "2024-06-04"))
	assert.Equal(t, "", ActivePlaque(logs, "Inconnu", "2024-06-03"))
}

func TestComputeDailyProductionMatchesDriverByPlate(t *testing.T) {
	billets := []model.Billet{
		{Date: "2024-06-03", Plaque: "l-12345 ", TypeSol: "Sable", Quantite: "20"},
		{Date: "2024-06-03", Plaque: "L-99999", TypeSol: "Sable", Quantite: "15"},
		{Date: "2024-06-02", Plaque: "L-12345", TypeSol: "Sable", Quantite: "10"},
	}
	driver := &model.UserAccount{Name: "Denis Boulet", Role: model.RoleChauffeur}

	prod := ComputeDailyProduction(billets, driver, "L-12345", "2024-06-03")

	assert.Equal(t, 1, prod.Trips)
	assert.Equal(t, 20.0, prod.TotalTons)
	require.Contains(t, prod.Materials, "Sable")
	assert.Equal(t, MaterialStat{Trips: 1, Tons: 20}, prod.Materials["Sable"])
}

func TestComputeDailyProductionResolvesOtherPlate(t *testing.T) {
	billets := []model.Billet{
		{Date: "2024-06-03", Plaque: model.OptionOther, PlaqueOther: "L-12345", TypeSol: "Gravier", Quantite: "12.5"},
	}
	driver := &model.UserAccount{Name: "Denis Boulet", Role: model.RoleChauffeur}

	prod := ComputeDailyProduction(billets, driver, "l-12345", "2024-06-03")

	assert.Equal(t, 1, prod.Trips)
	assert.Equal(t, 12.5, prod.TotalTons)
}

func TestComputeDailyProductionMatchesIssuerForNonDrivers(t *testing.T) {
	billets := []model.Billet{
		{Date: "2024-06-03", IssuerName: "Marc Côté", TypeSol: "Terre", Quantite: "8"},
		{Date: "2024-06-03", IssuerName: "Autre Émetteur", TypeSol: "Terre", Quantite: "8"},
	}
	operator := &model.UserAccount{Name: "Marc Côté", Role: model.RoleOperateur}

	prod := ComputeDailyProduction(billets, operator, "", "2024-06-03")

	assert.Equal(t, 1, prod.Trips)
	assert.Equal(t, 8.0, prod.TotalTons)
}

func TestComputeDailyProductionDriverWithoutPlateFallsBackToIssuer(t *testing.T) {
	billets := []model.Billet{
		{Date: "2024-06-03", IssuerName: "Denis Boulet", Plaque: "L-55555", TypeSol: "Sable", Quantite: "5"},
	}
	driver := &model.UserAccount{Name: "Denis Boulet", Role: model.RoleChauffeur}

	prod := ComputeDailyProduction(billets, driver, "", "2024-06-03")

	assert.Equal(t, 1, prod.Trips)
}

func TestComputeDailyProductionUnparseableTonnageCountsZero(t *testing.T) {
	billets := []model.Billet{
		{Date: "2024-06-03", Plaque: "L-12345", TypeSol: "Sable", Quantite: "beaucoup"},
		{Date: "2024-06-03", Plaque: "L-12345", Quantite: "20"},
	}
	driver := &model.UserAccount{Name: "Denis Boulet", Role: model.RoleChauffeur}

	prod := ComputeDailyProduction(billets, driver, "L-12345", "2024-06-03")

	assert.Equal(t, 2, prod.Trips)
	assert.Equal(t, 20.0, prod.TotalTons)
	assert.Equal(t, MaterialStat{Trips: 1, Tons: 0}, prod.Materials["Sable"])
	assert.Equal(t, MaterialStat{Trips: 1, Tons: 20}, prod.Materials["Inconnu"])
}
