package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/timeclock"
	"github.com/shawnlecompte2-web/LogiVrac/web/common"
	"github.com/shawnlecompte2-web/LogiVrac/web/middlewares"
)

// PayrollExport renders the payroll report as an .xlsx workbook, one sheet
// per week, optionally narrowed by ?week= (Sunday anchor) and ?group=.
func (ep *Endpoint) PayrollExport(c *gin.Context) {
	actor := middlewares.CurrentUser(c)
	if actor == nil || !actor.HasPermission(model.PermReports) {
		forbid(c)
		return
	}

	weeks, err := ep.buildPayroll(c)
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "payroll export: build", err)
		return
	}

	wantWeek := c.Query("week")
	wantGroup := c.Query("group")

	f := excelize.NewFile()
	defer f.Close()

	sheets := 0
	for _, week := range weeks {
		if wantWeek != "" && week.Anchor != wantWeek {
			continue
		}
		if writeWeekSheet(f, week, wantGroup) {
			sheets++
		}
	}
	if sheets == 0 {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("no payroll data for the requested period"))
		return
	}
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		ep.fail(c, http.StatusInternalServerError, "payroll export: write workbook", err)
		return
	}

	filename := "paie.xlsx"
	if wantWeek != "" {
		filename = fmt.Sprintf("paie-%s.xlsx", wantWeek)
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

func writeWeekSheet(f *excelize.File, week timeclock.PayrollWeek, wantGroup string) bool {
	sheet := week.Anchor
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return false
	}
	f.SetActiveSheet(idx)
	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 26)
	f.SetColWidth(sheet, "C", "E", 14)

	f.SetCellValue(sheet, "A1", week.Range)
	row := 3

	wrote := false
	for _, group := range week.Groups {
		if wantGroup != "" && group.Name != wantGroup {
			continue
		}
		wrote = true

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), group.Name)
		row++
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Employé")
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Date")
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), "Dîner")
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "Total")
		row++

		for _, emp := range group.Employees {
			for _, day := range emp.Days {
				f.SetCellValue(sheet, fmt.Sprintf("B%d", row), emp.Name)
				f.SetCellValue(sheet, fmt.Sprintf("C%d", row), day.Date)
				f.SetCellValue(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%d min", day.LunchMinutes))
				f.SetCellValue(sheet, fmt.Sprintf("E%d", row), timeclock.FormatMs(day.TotalMs))
				row++
			}
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), emp.Name+" (semaine)")
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), timeclock.FormatMs(emp.TotalMs))
			row += 2
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total "+group.Name)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), timeclock.FormatMs(group.TotalMs))
		row += 2
	}

	if !wrote {
		f.DeleteSheet(sheet)
	}
	return wrote
}
