package timeclock

import (
	"sort"

	"github.com/shawnlecompte2-web/LogiVrac/model"
	"github.com/shawnlecompte2-web/LogiVrac/utils"
)

// UnspecifiedTag groups pending days whose punch-in carried no plaque.
const UnspecifiedTag = "NON SPÉCIFIÉ"

// VisibleRoles is the static role-to-role visibility map: which roles' hours
// an actor may see and approve. Full-access roles see everything, the
// gestionnaire roles see their trade, everyone else sees nobody.
func VisibleRoles(actor model.Role) []model.Role {
	if actor.IsFreeAccess() {
		return model.AllRoles
	}
	switch actor {
	case model.RoleGestionnaireCour:
		return []model.Role{model.RoleOperateurCour}
	case model.RoleContremaitre:
		return []model.Role{model.RoleOperateur, model.RoleManoeuvre}
	case model.RoleGestionnaireMecano:
		return []model.Role{model.RoleMecano}
	case model.RoleGestionnaireChauffeur:
		return []model.Role{model.RoleChauffeur}
	}
	return nil
}

// CanView reports whether an actor role may act on a target role's hours.
func CanView(actor, target model.Role) bool {
	for _, r := range VisibleRoles(actor) {
		if r == target {
			return true
		}
	}
	return false
}

// PendingDay is one (employee, date) awaiting approval, with the defaults an
// approver starts editing from.
type PendingDay struct {
	EmployeeName    string     `json:"employeeName"`
	Role            model.Role `json:"role"`
	Date            string     `json:"date"`
	GrossMs         int64      `json:"grossMs"`
	DeclaredLunchMs int64      `json:"declaredLunchMs"`
	NetMs           int64      `json:"netMs"`
	InTime          string     `json:"inTime"`  // HH:MM of the day's first punch-in
	OutTime         string     `json:"outTime"` // HH:MM of the day's last punch-out
}

// PendingQueue builds the pending-approval queue visible to the given actor:
// per (employee, day) totals for roles the actor may approve, minus days
// already frozen and days with nothing to approve, grouped by the truck/site
// tag recorded at punch-in. Groups are keyed by tag; entries are ordered
// newest date first, then by employee name.
func PendingQueue(
	logs []model.PunchLog,
	users []model.UserAccount,
	approvals []model.ApprovalRecord,
	actor *model.UserAccount,
	policy DoubleInPolicy,
) map[string][]PendingDay {
	queue := make(map[string][]PendingDay)
	if actor == nil {
		return queue
	}

	byEmployee := utils.GroupBy(logs, func(l model.PunchLog) string { return l.EmployeeName })

	for employee, empLogs := range byEmployee {
		user := utils.Find(users, func(u model.UserAccount) bool { return u.Name == employee })
		if user == nil || !CanView(actor.Role, user.Role) {
			continue
		}

		days, _ := BuildWorkDays(empLogs, policy)
		for _, date := range SortedDates(days) {
			day := days[date]
			if day.GrossMs() == 0 {
				continue
			}
			if FindApproval(approvals, employee, date) != nil {
				continue
			}

			tag := day.Tag()
			if tag == "" {
				tag = UnspecifiedTag
			}

			lunchMs := int64(day.LunchMinutes) * 60_000
			entry := PendingDay{
				EmployeeName:    employee,
				Role:            user.Role,
				Date:            date,
				GrossMs:         day.GrossMs(),
				DeclaredLunchMs: lunchMs,
				NetMs:           day.NetMs(),
				InTime:          ClockOf(day.Sessions[0].In),
				OutTime:         ClockOf(day.Sessions[len(day.Sessions)-1].Out),
			}
			queue[tag] = append(queue[tag], entry)
		}
	}

	for tag := range queue {
		entries := queue[tag]
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Date != entries[j].Date {
				return entries[i].Date > entries[j].Date
			}
			return entries[i].EmployeeName < entries[j].EmployeeName
		})
	}
	return queue
}
