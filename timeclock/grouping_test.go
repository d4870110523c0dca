package timeclock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shawnlecompte2-web/LogiVrac/model"
)

func TestVisibleRoles(t *testing.T) {
	tests := []struct {
		actor model.Role
		want  []model.Role
	}{
		{model.RoleAdmin, model.AllRoles},
		{model.RoleSurintendant, model.AllRoles},
		{model.RoleContremaitre, []model.Role{model.RoleOperateur, model.RoleManoeuvre}},
		{model.RoleGestionnaireCour, []model.Role{model.RoleOperateurCour}},
		{model.RoleGestionnaireMecano, []model.Role{model.RoleMecano}},
		{model.RoleGestionnaireChauffeur, []model.Role{model.RoleChauffeur}},
		{model.RoleChauffeur, nil},
		{model.RoleUser, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.actor), func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleRoles(tt.actor))
		})
	}
}

func TestCanView(t *testing.T) {
	assert.True(t, CanView(model.RoleContremaitre, model.RoleManoeuvre))
	assert.False(t, CanView(model.RoleContremaitre, model.RoleChauffeur))
	assert.True(t, CanView(model.RoleAdmin, model.RoleChauffeur))
	assert.False(t, CanView(model.RoleChauffeur, model.RoleChauffeur))
}

func pendingFixture() ([]model.PunchLog, []model.UserAccount) {
	in1 := model.PunchLog{EmployeeName: "Denis Boulet", Type: model.PunchIn, Timestamp: "03/06/2024, 08:00:00", Plaque: "L-12345"}
	out1 := model.PunchLog{EmployeeName: "Denis Boulet", Type: model.PunchOut, Timestamp: "03/06/2024, 16:00:00"}
	in2 := model.PunchLog{EmployeeName: "Marc Côté", Type: model.PunchIn, Timestamp: "03/06/2024, 07:00:00"}
	out2 := model.PunchLog{EmployeeName: "Marc Côté", Type: model.PunchOut, Timestamp: "03/06/2024, 15:00:00"}

	users := []model.UserAccount{
		{Name: "Denis Boulet", Role: model.RoleChauffeur},
		{Name: "Marc Côté", Role: model.RoleOperateur},
	}
	return []model.PunchLog{in1, out1, in2, out2}, users
}

func TestPendingQueueGroupsByPlaque(t *testing.T) {
	logs, users := pendingFixture()
	admin := &model.UserAccount{Name: "Julie Roy", Role: model.RoleAdmin}

	queue := PendingQueue(logs, users, nil, admin, ReplaceOpenSession)

	require.Len(t, queue, 2)
	require.Len(t, queue["L-12345"], 1)
	assert.Equal(t, "Denis Boulet", queue["L-12345"][0].EmployeeName)
	assert.Equal(t, "08:00", queue["L-12345"][0].InTime)
	assert.Equal(t, "16:00", queue["L-12345"][0].OutTime)
	require.Len(t, queue[UnspecifiedTag], 1)
	assert.Equal(t, "Marc Côté", queue[UnspecifiedTag][0].EmployeeName)
}

func TestPendingQueueFiltersInvisibleRoles(t *testing.T) {
	logs, users := pendingFixture()
	contremaitre := &model.UserAccount{Name: "Julie Roy", Role: model.RoleContremaitre}

	queue := PendingQueue(logs, users, nil, contremaitre, ReplaceOpenSession)

	require.Len(t, queue, 1)
	assert.Equal(t, "Marc Côté", queue[UnspecifiedTag][0].EmployeeName)
}

func TestPendingQueueSkipsApprovedDays(t *testing.T) {
	logs, users := pendingFixture()
	admin := &model.UserAccount{Name: "Julie Roy", Role: model.RoleAdmin}
	approvals := []model.ApprovalRecord{
		{EmployeeName: "Denis Boulet", Date: "2024-06-03", Status: model.StatusApproved},
	}

	queue := PendingQueue(logs, users, approvals, admin, ReplaceOpenSession)

	assert.NotContains(t, queue, "L-12345")
	assert.Len(t, queue[UnspecifiedTag], 1)
}

func TestPendingQueueSkipsZeroGrossAndUnknownEmployees(t *testing.T) {
	logs := []model.PunchLog{
		// open session only, nothing closed
		{EmployeeName: "Denis Boulet", Type: model.PunchIn, Timestamp: "03/06/2024, 08:00:00"},
		// unknown to the roster
		{EmployeeName: "Fantôme", Type: model.PunchIn, Timestamp: "03/06/2024, 08:00:00"},
		{EmployeeName: "Fantôme", Type: model.PunchOut, Timestamp: "03/06/2024, 16:00:00"},
	}
	users := []model.UserAccount{{Name: "Denis Boulet", Role: model.RoleChauffeur}}
	admin := &model.UserAccount{Name: "Julie Roy", Role: model.RoleAdmin}

	queue := PendingQueue(logs, users, nil, admin, ReplaceOpenSession)

	assert.Empty(t, queue)
}

func TestPendingQueueOrdersNewestFirst(t *testing.T) {
	logs := []model.PunchLog{
		{EmployeeName: "Denis Boulet", Type: model.PunchIn, Timestamp: "01/06/2024, 08:00:00"},
		{EmployeeName: "Denis Boulet", Type: model.PunchOut, Timestamp: "01/06/2024, 16:00:00"},
		{EmployeeName: "Denis Boulet", Type: model.PunchIn, Timestamp: "03/06/2024, 08:00:00"},
		{EmployeeName: "Denis Boulet", Type: model.PunchOut, Timestamp: "03/06/2024, 16:00:00"},
	}
	users := []model.UserAccount{{Name: "Denis Boulet", Role: model.RoleChauffeur}}
	admin := &model.UserAccount{Name: "Julie Roy", Role: model.RoleAdmin}

	queue := PendingQueue(logs, users, nil, admin, ReplaceOpenSession)

	entries := queue[UnspecifiedTag]
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-06-03", entries[0].Date)
	assert.Equal(t, "2024-06-01", entries[1].Date)
}
