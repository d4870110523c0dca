package timeclock

import (
	"sort"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/utils"
)

// UnassignedGroup buckets employees missing from the roster or without an
// organizational group.
const UnassignedGroup = "Non classé"

// The payroll report only carries final figures: days frozen by an
// ApprovalRecord (read back verbatim, never recomputed) plus chauffeur days,
// which are final by role without an explicit record. Pending days of every
// other role are excluded until an approver freezes them.

type PayrollSession struct {
	In         string `json:"in"`  // HH:MM
	Out        string `json:"out"` // HH:MM
	Tag        string `json:"tag,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

type PayrollDay struct {
	Date         string           `json:"date"`
	Sessions     []PayrollSession `json:"sessions"`
	GrossMs      int64            `json:"grossMs"`
	LunchMinutes int              `json:"lunchMinutes"`
	TotalMs      int64            `json:"totalMs"`
	Final        bool             `json:"final"` // frozen by an approval record
}

type PayrollEmployee struct {
	Name    string       `json:"name"`
	Role    model.Role   `json:"role"`
	TotalMs int64        `json:"totalMs"`
	Days    []PayrollDay `json:"days"`
}

type PayrollGroup struct {
	Name      string            `json:"name"`
	TotalMs   int64             `json:"totalMs"`
	Employees []PayrollEmployee `json:"employees"`
}

type PayrollWeek struct {
	Anchor  string         `json:"anchor"` // Sunday, YYYY-MM-DD
	Range   string         `json:"range"`
	TotalMs int64          `json:"totalMs"`
	Groups  []PayrollGroup `json:"groups"`
}

// BuildPayrollReport buckets final day totals by organizational group, week
// anchor and employee. Weeks are returned newest first; groups and
// employees alphabetically; days ascending.
func BuildPayrollReport(
	logs []model.PunchLog,
	users []model.UserAccount,
	approvals []model.ApprovalRecord,
	policy DoubleInPolicy,
) []PayrollWeek {
	type empKey struct {
		week  string
		group string
		name  string
	}
	empDays := make(map[empKey][]PayrollDay)
	empRoles := make(map[empKey]model.Role)

	byEmployee := utils.GroupBy(logs, func(l model.PunchLog) string { return l.EmployeeName })
	for employee, empLogs := range byEmployee {
		role := model.RoleUser
		group := UnassignedGroup
		if u := utils.Find(users, func(u model.UserAccount) bool { return u.Name == employee }); u != nil {
			role = u.Role
			if u.Group != "" {
				group = u.Group
			}
		}

		days, _ := BuildWorkDays(empLogs, policy)
		for _, date := range SortedDates(days) {
			day := days[date]
			rec := FindApproval(approvals, employee, date)
			if rec == nil && role != model.RoleChauffeur {
				continue
			}

			hours := ResolveDayHours(day, rec)
			pd := PayrollDay{
				Date:         date,
				GrossMs:      day.GrossMs(),
				LunchMinutes: int(hours.LunchMs / 60_000),
				TotalMs:      hours.TotalMs,
				Final:        hours.Final(),
			}
			for _, s := range day.Sessions {
				pd.Sessions = append(pd.Sessions, PayrollSession{
					In:         ClockOf(s.In),
					Out:        ClockOf(s.Out),
					Tag:        s.Tag,
					DurationMs: s.Duration.Milliseconds(),
				})
			}

			key := empKey{week: WeekAnchor(date), group: group, name: employee}
			empDays[key] = append(empDays[key], pd)
			empRoles[key] = role
		}
	}

	// assemble week → group → employee
	weekGroups := make(map[string]map[string][]PayrollEmployee)
	for key, days := range empDays {
		emp := PayrollEmployee{Name: key.name, Role: empRoles[key], Days: days}
		for _, d := range days {
			emp.TotalMs += d.TotalMs
		}
		if weekGroups[key.week] == nil {
			weekGroups[key.week] = make(map[string][]PayrollEmployee)
		}
		weekGroups[key.week][key.group] = append(weekGroups[key.week][key.group], emp)
	}

	weeks := make([]PayrollWeek, 0, len(weekGroups))
	for anchor, groups := range weekGroups {
		week := PayrollWeek{Anchor: anchor, Range: FormatWeekRange(anchor)}
		for name, employees := range groups {
			sort.Slice(employees, func(i, j int) bool { return employees[i].Name < employees[j].Name })
			g := PayrollGroup{Name: name, Employees: employees}
			for _, e := range employees {
				g.TotalMs += e.TotalMs
			}
			week.Groups = append(week.Groups, g)
			week.TotalMs += g.TotalMs
		}
		sort.Slice(week.Groups, func(i, j int) bool { return week.Groups[i].Name < week.Groups[j].Name })
		weeks = append(weeks, week)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Anchor > weeks[j].Anchor })
	return weeks
}
