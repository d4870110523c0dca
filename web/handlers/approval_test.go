package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/timeclock"
)

func (f *fixture) punchDay(t *testing.T, employee, date string) {
	t.Helper()
	driver := f.user(t, employee)
	for _, p := range []gin.H{
		{"id": "p-" + employee + "-in", "employeeName": employee, "type": "in", "timestamp": date + ", 08:00:00", "plaque": "L-12345"},
		{"id": "p-" + employee + "-out", "employeeName": employee, "type": "out", "timestamp": date + ", 16:00:00"},
	} {
		w := f.request(t, http.MethodPost, "/api/logivrac/v1.0/punches", p, driver)
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestApprovalFlow(t *testing.T) {
	f := newFixture(t)
	f.punchDay(t, "Denis Boulet", "03/06/2024")
	approver := f.user(t, "Janot Blais") // gestionnaire_chauffeur

	// day shows up in the pending queue, grouped under its plate
	w := f.request(t, http.MethodGet, "/api/logivrac/v1.0/approvals/pending", nil, approver)
	require.Equal(t, http.StatusOK, w.Code)
	var queue map[string][]timeclock.PendingDay
	decodeData(t, w, &queue)
	require.Len(t, queue["L-12345"], 1)
	assert.Equal(t, "08:00", queue["L-12345"][0].InTime)

	// approve with edited times
	body := gin.H{
		"employeeName": "Denis Boulet",
		"date":         "2024-06-03",
		"inTime":       "08:00",
		"outTime":      "17:00",
		"lunchMinutes": 60,
	}
	w = f.request(t, http.MethodPost, "/api/logivrac/v1.0/approvals", body, approver)
	require.Equal(t, http.StatusOK, w.Code)
	var rec model.ApprovalRecord
	decodeData(t, w, &rec)
	assert.Equal(t, int64(25_200_000), rec.TotalMs)
	assert.Equal(t, "Janot Blais", rec.ApproverName)

	// second attempt conflicts
	w = f.request(t, http.MethodPost, "/api/logivrac/v1.0/approvals", body, approver)
	assert.Equal(t, http.StatusConflict, w.Code)

	// the day left the queue
	w = f.request(t, http.MethodGet, "/api/logivrac/v1.0/approvals/pending", nil, approver)
	require.Equal(t, http.StatusOK, w.Code)
	queue = nil
	decodeData(t, w, &queue)
	assert.Empty(t, queue)

	// and landed in the audit list
	w = f.request(t, http.MethodGet, "/api/logivrac/v1.0/approvals", nil, approver)
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.ApprovalRecord
	decodeData(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "2024-06-03", list[0].Date)
}

func TestApprovalRequiresPermission(t *testing.T) {
	f := newFixture(t)
	driver := f.user(t, "Denis Boulet")

	w := f.request(t, http.MethodGet, "/api/logivrac/v1.0/approvals/pending", nil, driver)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.request(t, http.MethodPost, "/api/logivrac/v1.0/approvals", gin.H{
		"employeeName": "Denis Boulet",
		"date":         "2024-06-03",
		"inTime":       "08:00",
		"outTime":      "16:00",
	}, driver)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApprovalRespectsRoleVisibility(t *testing.T) {
	f := newFixture(t)
	f.punchDay(t, "Denis Boulet", "03/06/2024")
	// contremaitre approves operateur/manoeuvre, not chauffeur
	contremaitre := f.user(t, "Marc-Antoine Yelle")

	w := f.request(t, http.MethodGet, "/api/logivrac/v1.0/approvals/pending", nil, contremaitre)
	require.Equal(t, http.StatusOK, w.Code)
	var queue map[string][]timeclock.PendingDay
	decodeData(t, w, &queue)
	assert.Empty(t, queue)

	w = f.request(t, http.MethodPost, "/api/logivrac/v1.0/approvals", gin.H{
		"employeeName": "Denis Boulet",
		"date":         "2024-06-03",
		"inTime":       "08:00",
		"outTime":      "16:00",
	}, contremaitre)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApprovalRejectsUnknownEmployee(t *testing.T) {
	f := newFixture(t)
	admin := f.user(t, "Julie Allard")

	w := f.request(t, http.MethodPost, "/api/logivrac/v1.0/approvals", gin.H{
		"employeeName": "Personne Inexistante",
		"date":         "2024-06-03",
		"inTime":       "08:00",
		"outTime":      "16:00",
	}, admin)
	require.Equal(t, http.StatusNotFound, w.Code)

	// nothing frozen, nothing leaks into payroll
	w = f.request(t, http.MethodGet, "/api/logivrac/v1.0/approvals", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	var list []model.ApprovalRecord
	decodeData(t, w, &list)
	assert.Empty(t, list)
}

func TestPayrollReportShowsChauffeurWithoutApproval(t *testing.T) {
	f := newFixture(t)
	f.punchDay(t, "Denis Boulet", "03/06/2024")
	admin := f.user(t, "Julie Allard")

	w := f.request(t, http.MethodGet, "/api/logivrac/v1.0/reports/payroll", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)

	var weeks []timeclock.PayrollWeek
	decodeData(t, w, &weeks)
	require.Len(t, weeks, 1)
	require.Len(t, weeks[0].Groups, 1)
	assert.Equal(t, "DDL Logistiques", weeks[0].Groups[0].Name)
	assert.Equal(t, int64(8*3_600_000), weeks[0].TotalMs)
}

func TestPayrollExportProducesWorkbook(t *testing.T) {
	f := newFixture(t)
	f.punchDay(t, "Denis Boulet", "03/06/2024")
	admin := f.user(t, "Julie Allard")

	w := f.request(t, http.MethodGet, "/api/logivrac/v1.0/reports/payroll/export?week=2024-06-02", nil, admin)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "paie-2024-06-02.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestPayrollExportUnknownWeek(t *testing.T) {
	f := newFixture(t)
	f.punchDay(t, "Denis Boulet", "03/06/2024")
	admin := f.user(t, "Julie Allard")

	w := f.request(t, http.MethodGet, "/api/logivrac/v1.0/reports/payroll/export?week=2030-01-06", nil, admin)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
