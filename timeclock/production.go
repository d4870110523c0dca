package timeclock

import (
	"strconv"
	"strings"

	"github.com/shawnlecompte2-web/LogiVrac/model"
)

// MaterialStat counts trips and tonnage for one material type.
type MaterialStat struct {
	Trips int     `json:"trips"`
	Tons  float64 `json:"tons"`
}

// DailyProduction is the per-day transport output correlated to one actor.
type DailyProduction struct {
	Trips     int                     `json:"trips"`
	TotalTons float64                 `json:"totalTons"`
	Materials map[string]MaterialStat `json:"materials"`
}

// ActivePlaque returns the plate of the employee's most recent punch-in on
// the given date, "" when none carries one.
func ActivePlaque(logs []model.PunchLog, employeeName, date string) string {
	var best string
	var bestAt int64
	for _, l := range logs {
		if l.EmployeeName != employeeName || l.Type != model.PunchIn {
			continue
		}
		at := ParseTimestamp(l.Timestamp)
		if at.IsZero() || DayKeyOf(at) != date {
			continue
		}
		if ms := at.UnixMilli(); ms >= bestAt {
			bestAt = ms
			best = l.Plaque
		}
	}
	return best
}

// ComputeDailyProduction correlates the day's tickets to an actor. Driver
// class roles match on the truck plate recorded at punch-in
// (case-insensitive, trimmed, "Autre" resolved to its free-text companion);
// everyone else matches on ticket issuer identity. Tonnage strings that do
// not parse count as zero.
func ComputeDailyProduction(billets []model.Billet, actor *model.UserAccount, activePlaque, date string) DailyProduction {
	prod := DailyProduction{Materials: make(map[string]MaterialStat)}
	byPlaque := actor.Role.IsDriverClass() && activePlaque != ""
	wantPlaque := normalizePlaque(activePlaque)

	for i := range billets {
		b := &billets[i]
		if b.Date != date {
			continue
		}
		if byPlaque {
			if normalizePlaque(b.EffectivePlaque()) != wantPlaque {
				continue
			}
		} else if b.IssuerName != actor.Name {
			continue
		}

		material := b.EffectiveTypeSol()
		tons, err := strconv.ParseFloat(strings.TrimSpace(b.EffectiveQuantite()), 64)
		if err != nil {
			tons = 0
		}

		stat := prod.Materials[material]
		stat.Trips++
		stat.Tons += tons
		prod.Materials[material] = stat

		prod.Trips++
		prod.TotalTons += tons
	}
	return prod
}

func normalizePlaque(plaque string) string {
	return strings.ToUpper(strings.TrimSpace(plaque))
}
