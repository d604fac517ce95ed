package shipdesk

import (
	"fmt"
	"hash/fnv"
	"time"
)

// BerthCount is the number of numbered berths at the terminal.
const BerthCount = 6

// BerthSlot describes the ship currently occupying a berth.
type BerthSlot struct {
	ShipID     int    `json:"shipId"`
	VesselName string `json:"vesselName"`
	Status     string `json:"status"`
	Progress   int    `json:"progress"`
}

// BerthOccupancy maps every berth to the unfinished ship assigned to it, or nil
// when free. Berths 1 through BerthCount are always present; ships assigned to
// any other berth name add that berth. Later ships win a shared berth.
func BerthOccupancy(ships []*Ship) map[string]*BerthSlot {
	berths := make(map[string]*BerthSlot, BerthCount)
	for i := 1; i <= BerthCount; i++ {
		berths[fmt.Sprintf("Berth %d", i)] = nil
	}
	for _, s := range ships {
		if s.Status == StatusComplete || s.Berth == "" {
			continue
		}
		berths[s.Berth] = &BerthSlot{
			ShipID:     s.ID,
			VesselName: s.VesselName,
			Status:     s.Status,
			Progress:   s.Progress,
		}
	}
	return berths
}

// Stats summarises current terminal activity.
type Stats struct {
	ActiveShips     int     `json:"activeShips"`
	TotalShips      int     `json:"totalShips"`
	TeamsDeployed   int     `json:"teamsDeployed"`
	TotalVehicles   int     `json:"totalVehicles"`
	BerthsOccupied  int     `json:"berthsOccupied"`
	AverageProgress float64 `json:"averageProgress"`
}

// ComputeStats summarises ships out of a fleet of total. Completed ships are
// ignored. Every active ship deploys an auto team and a heavy equipment team.
func ComputeStats(ships []*Ship, total int) Stats {
	stats := Stats{TotalShips: total}
	berths := make(map[string]struct{})
	progress := 0
	for _, s := range ships {
		if s.Status == StatusComplete {
			continue
		}
		stats.ActiveShips++
		stats.TotalVehicles += s.TotalVehicles
		progress += s.Progress
		if s.Berth != "" {
			berths[s.Berth] = struct{}{}
		}
	}
	stats.TeamsDeployed = stats.ActiveShips * 2
	stats.BerthsOccupied = len(berths)
	if stats.ActiveShips > 0 {
		stats.AverageProgress = float64(progress) / float64(stats.ActiveShips)
	}
	return stats
}

// Analytics constants.
const (
	DefaultAnalyticsPeriod = 30
	DefaultShiftHours      = 12.0
	AverageEfficiency      = 88

	// Maximum number of days reported in DailyHours.
	maxDailyHours = 30
)

// Analytics is the reporting view over ships operated in a period.
type Analytics struct {
	TotalHours      int                        `json:"totalHours"`
	ShipsProcessed  int                        `json:"shipsProcessed"`
	VehiclesHandled int                        `json:"vehiclesHandled"`
	AvgEfficiency   int                        `json:"avgEfficiency"`
	DailyHours      []DailyHours               `json:"dailyHours"`
	VehicleTypes    VehicleTypes               `json:"vehicleTypes"`
	ZonePerformance map[string]ZonePerformance `json:"zonePerformance"`
	TeamPerformance []TeamPerformance          `json:"teamPerformance"`
}

// DailyHours is the labour booked on one day.
type DailyHours struct {
	Date  string `json:"date"`
	Hours int    `json:"hours"`
}

// VehicleTypes totals handled cargo by kind.
type VehicleTypes struct {
	Automobiles      int `json:"automobiles"`
	HeavyEquipment   int `json:"heavyEquipment"`
	ElectricVehicles int `json:"electricVehicles"`
	StaticCargo      int `json:"staticCargo"`
}

// ZonePerformance reports throughput for one processing zone.
type ZonePerformance struct {
	Vehicles   int `json:"vehicles"`
	AvgTime    int `json:"avgTime"`
	Efficiency int `json:"efficiency"`
}

// TeamPerformance reports the work led by one person.
type TeamPerformance struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Hours      int    `json:"hours"`
	Ships      int    `json:"ships"`
	Efficiency int    `json:"efficiency"`
}

// Team lead roles reported in TeamPerformance.
const (
	RoleAutoLead  = "Auto Operations Lead"
	RoleHeavyLead = "Heavy Equipment Lead"
)

// zoneShares splits handled vehicles across zones A, B and C.
var zoneShares = []struct {
	key        string
	share      float64
	avgTime    int
	efficiency int
}{
	{"zoneA", 0.35, 12, 87},
	{"zoneB", 0.40, 10, 92},
	{"zoneC", 0.25, 15, 83},
}

// AnalyticsWindow returns the inclusive operation date range covered by a
// period of days ending at now.
func AnalyticsWindow(periodDays int, now time.Time) (from, to string) {
	return now.AddDate(0, 0, -periodDays).Format(DateLayout), now.Format(DateLayout)
}

// ComputeAnalytics builds the analytics view for ships operated in the
// period of days ending at now. Ships are expected to be pre-filtered to
// AnalyticsWindow.
func ComputeAnalytics(ships []*Ship, periodDays int, now time.Time) *Analytics {
	if periodDays <= 0 {
		periodDays = DefaultAnalyticsPeriod
	}

	a := &Analytics{
		ShipsProcessed: len(ships),
		AvgEfficiency:  AverageEfficiency,
	}

	type team struct {
		role  string
		hours float64
		ships int
	}
	teams := make(map[string]*team)
	var order []string
	addTeam := func(name, role string, hours float64) {
		if name == "" {
			return
		}
		t, ok := teams[name]
		if !ok {
			t = &team{role: role}
			teams[name] = t
			order = append(order, name)
		}
		t.hours += hours
		t.ships++
	}

	var totalHours float64
	perDay := make(map[string]int)
	for _, s := range ships {
		hours := ShiftHours(s.ShiftStart, s.ShiftEnd)
		totalHours += hours

		a.VehiclesHandled += s.TotalVehicles
		a.VehicleTypes.Automobiles += s.TotalAutomobilesDischarge
		a.VehicleTypes.HeavyEquipment += s.HeavyEquipmentDischarge
		a.VehicleTypes.ElectricVehicles += s.TotalElectricVehicles
		a.VehicleTypes.StaticCargo += s.TotalStaticCargo

		addTeam(s.AutoOpsLead, RoleAutoLead, hours)
		addTeam(s.HeavyOpsLead, RoleHeavyLead, hours)

		perDay[s.OperationDate]++
	}
	a.TotalHours = int(totalHours)

	days := min(periodDays, maxDailyHours)
	a.DailyHours = make([]DailyHours, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		a.DailyHours = append(a.DailyHours, DailyHours{
			Date:  day.Format("01/02"),
			Hours: int(DefaultShiftHours) * perDay[day.Format(DateLayout)],
		})
	}

	a.ZonePerformance = make(map[string]ZonePerformance, len(zoneShares))
	for _, z := range zoneShares {
		a.ZonePerformance[z.key] = ZonePerformance{
			Vehicles:   int(float64(a.VehiclesHandled) * z.share),
			AvgTime:    z.avgTime,
			Efficiency: z.efficiency,
		}
	}

	a.TeamPerformance = make([]TeamPerformance, 0, len(order))
	for _, name := range order {
		t := teams[name]
		a.TeamPerformance = append(a.TeamPerformance, TeamPerformance{
			Name:       name,
			Role:       t.role,
			Hours:      int(t.hours),
			Ships:      t.ships,
			Efficiency: TeamEfficiency(name),
		})
	}

	return a
}

// ShiftHours returns the length of a shift given HH:MM start and end times.
// Shifts that end before they start run past midnight. Unparseable times
// yield DefaultShiftHours.
func ShiftHours(start, end string) float64 {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return DefaultShiftHours
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return DefaultShiftHours
	}
	d := e.Sub(s)
	if d < 0 {
		d += 24 * time.Hour
	}
	return d.Hours()
}

// TeamEfficiency returns a stable efficiency score in [85, 99] for a team lead.
func TeamEfficiency(name string) int {
	h := fnv.New32a()
	h.Write([]byte(name))
	return 85 + int(h.Sum32()%15)
}
