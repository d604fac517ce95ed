package extract

import (
	"fmt"
	"slices"
	"strings"
)

var defaultRules = buildRules()

// DefaultRules returns the field families recognised in terminal documents,
// in the order they are resolved. A later rule overwrites keys written by an
// earlier one.
func DefaultRules() []Rule {
	return slices.Clone(defaultRules)
}

func buildRules() []Rule {
	var rules []Rule
	rules = append(rules, vesselRules()...)
	rules = append(rules, cargoCountRules()...)
	rules = append(rules, teamRules()...)
	rules = append(rules, scheduleRules()...)
	rules = append(rules, vanRules()...)
	rules = append(rules, zoneRules()...)
	rules = append(rules, targetRules()...)
	rules = append(rules, zeeRules()...)
	rules = append(rules, ticoRules()...)
	return rules
}

func vesselRules() []Rule {
	const name = `([A-Za-z0-9\s\-\.]+)`
	return []Rule{
		{
			Keys:   []string{"vesselName"},
			Source: Clean,
			Patterns: patterns(
				`vessel\s*name[:\s\-=]+`+name,
				`ship\s*name[:\s\-=]+`+name,
				`mv\s+`+name,
				`m/v\s+`+name,
				`vessel[:\s\-=]+`+name,
				`name\s*of\s*vessel[:\s\-=]+`+name,
				`ship[:\s\-=]+`+name,
				`vessel\s*:\s*`+name,
				`([A-Z][A-Z\s]{2,20})\s*(?:vessel|ship)`,
				`(?:the\s+)?([A-Z][A-Za-z\s]{5,30})\s*(?:auto\s*carrier|roro|vessel)`,
			),
			Normalize: vesselName,
		},
		{
			Keys:   []string{"vesselType"},
			Source: Clean,
			Patterns: patterns(
				`vessel\s*type[:\s\-=]+([A-Za-z\s\-]+)`,
				`ship\s*type[:\s\-=]+([A-Za-z\s\-]+)`,
				`type[:\s\-=]+(auto\s*carrier|roro|ro-ro|container|multi-purpose|car\s*carrier)`,
				`(auto\s*carrier|roro|ro-ro|container\s*ship|multi-purpose|car\s*carrier)`,
				`vehicle\s*carrier`,
				`automobile\s*carrier`,
			),
			Normalize: vesselType,
		},
		{
			Keys:   []string{"port"},
			Source: Clean,
			Patterns: patterns(
				`port[:\s\-=]+([A-Za-z\s]+)`,
				`destination[:\s\-=]+([A-Za-z\s]+)`,
				`berth[:\s\-=]+([A-Za-z0-9\s]+)`,
				`location[:\s\-=]+([A-Za-z\s]+)`,
				`terminal[:\s\-=]+([A-Za-z\s]+)`,
				`colonel\s*island`,
				`brunswick`,
				`savannah`,
				`charleston`,
				`(colonel\s*island|brunswick|savannah|charleston)`,
				`discharge\s*port[:\s\-=]+([A-Za-z\s]+)`,
				`loading\s*port[:\s\-=]+([A-Za-z\s]+)`,
			),
			Normalize: port,
		},
		{
			Keys:   []string{"operationDate"},
			Source: Clean,
			Patterns: patterns(
				`(\d{4}-\d{2}-\d{2})`,
				`(\d{2}/\d{2}/\d{4})`,
				`(\d{2}-\d{2}-\d{4})`,
				`date[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{4})`,
			),
			Normalize: operationDate,
		},
		{
			Keys:   []string{"company"},
			Source: Raw,
			Patterns: patterns(
				`stevedoring[:\s]+([A-Za-z\s]+)`,
				`company[:\s]+([A-Za-z\s]+)`,
				`aps\s*stevedoring`,
				`ssa\s*marine`,
				`ports\s*america`,
			),
			Normalize: company,
		},
		{
			Keys:   []string{"operationType"},
			Source: Clean,
			Patterns: patterns(
				// Longest alternatives first so combined operations are not cut short.
				`operation[:\s\-=]+(discharge\s*\+\s*loading|discharge\s*and\s*loading|discharge|loading)`,
				`(discharge\s*only|loading\s*only|discharge\s*and\s*loading)`,
				`type\s*of\s*operation[:\s\-=]+(discharge|loading|both)`,
				`operation\s*type[:\s\-=]+(discharge|loading|both)`,
				`work\s*type[:\s\-=]+(discharge|loading|both)`,
				`(discharge|loading|both)\s*operation`,
				`cargo\s*operation[:\s\-=]+(discharge|loading|both)`,
			),
			Normalize: operationType,
		},
		{
			Keys:   []string{"berthLocation", "berth", "berthAssignment"},
			Source: Clean,
			Patterns: patterns(
				`berth\s*location[:\s\-=]+([A-Za-z0-9\s]+)`,
				`berth[:\s\-=]+([123456])`,
				`berth\s*([123456])`,
				`assigned.*berth[:\s\-=]*([123456])`,
				`berth\s*assignment[:\s\-=]+([A-Za-z0-9\s]+)`,
				`dock[:\s\-=]+([123456])`,
				`pier[:\s\-=]+([123456])`,
				`terminal\s*berth[:\s\-=]+([123456])`,
				`vessel.*berth[:\s\-=]+([123456])`,
				`ship.*berth[:\s\-=]+([123456])`,
				`mooring[:\s\-=]+([A-Za-z0-9\s]+)`,
				`wharf[:\s\-=]+([A-Za-z0-9\s]+)`,
				`(?:at\s+)?berth\s*(\d+)`,
				`(?:position|location)[:\s\-=]+berth\s*(\d+)`,
			),
			Normalize: berth,
		},
	}
}

func cargoCountRules() []Rule {
	rules := []Rule{
		{
			Keys:   []string{"totalAutomobilesDischarge", "totalAutomobiles", "automobiles"},
			Source: Clean,
			Policy: MaxInt,
			Patterns: patterns(
				`total\s*automobiles?[:\s]+(\d+)`,
				`total\s*vehicles?[:\s]+(\d+)`,
				`automobiles?\s*discharge[:\s]+(\d+)`,
				`automobiles?[:\s]+(\d+)`,
				`cars?[:\s]+(\d+)`,
				`units?[:\s]+(\d+)`,
				`(\d+)\s*automobiles?`,
				`(\d+)\s*vehicles?`,
				`(\d+)\s*cars?`,
			),
		},
		{
			Keys:   []string{"heavyEquipmentDischarge", "heavyEquipment"},
			Source: Clean,
			Policy: MaxInt,
			Patterns: patterns(
				`heavy\s*equipment\s*units?[:\s]+(\d+)`,
				`heavy\s*equipment[:\s]+(\d+)`,
				`hh[:\s]+(\d+)`,
				`high\s*&\s*heavy[:\s]+(\d+)`,
				`high\s*and\s*heavy[:\s]+(\d+)`,
				`(\d+)\s*heavy\s*equipment`,
				`equipment\s*units?[:\s]+(\d+)`,
			),
		},
		{
			Keys:      []string{"mbCount"},
			Source:    Raw,
			Patterns:  patterns(`mercedes[-\s]*benz[:\s]+(\d+)|mb[:\s]+(\d+)`),
			Normalize: toInt,
		},
		{
			Keys:      []string{"bmwCount"},
			Source:    Raw,
			Patterns:  patterns(`bmw[:\s]+(\d+)`),
			Normalize: toInt,
		},
		{
			Keys:      []string{"lrCount"},
			Source:    Raw,
			Patterns:  patterns(`land\s*rover[:\s]+(\d+)|lr[:\s]+(\d+)`),
			Normalize: toInt,
		},
		{
			Keys:      []string{"rrCount"},
			Source:    Raw,
			Patterns:  patterns(`rolls[-\s]*royce[:\s]+(\d+)|rr[:\s]+(\d+)`),
			Normalize: toInt,
		},
	}

	// These brands are reported as strings.
	for _, brand := range []string{"audi", "porsche", "mini", "jaguar"} {
		rules = append(rules, Rule{
			Keys:     []string{brand},
			Source:   Raw,
			Patterns: patterns(brand + `[:\s]+(\d+)`),
		})
	}

	return append(rules,
		Rule{
			Keys:   []string{"electricVehicles"},
			Source: Raw,
			Patterns: patterns(
				`electric\s*vehicles?[:\s]+(\d+)`,
				`ev[:\s]+(\d+)`,
				`(\d+)\s*electric\s*vehicles?`,
			),
		},
		Rule{
			Keys:   []string{"staticCargo"},
			Source: Raw,
			Patterns: patterns(
				`static\s*cargo[:\s]+(\d+)`,
				`static\s*cargo\s*units?[:\s]+(\d+)`,
				`(\d+)\s*static\s*cargo`,
			),
		},
		Rule{
			Keys:   []string{"cargoType"},
			Source: Raw,
			Patterns: patterns(
				`cargo\s*brand[/\s]*type[:\s]+([A-Za-z\s\-]+)`,
				`cargo\s*type[:\s]+([A-Za-z\s\-]+)`,
				`brand[/\s]*type[:\s]+([A-Za-z\s\-]+)`,
			),
		},
	)
}

// teamRules resolves the supervisors. Each role has one known person whose
// first name alone is enough to identify them.
func teamRules() []Rule {
	const name = `([A-Za-z\s]+)`
	return []Rule{
		{
			Keys:   []string{"autoOperationsLead"},
			Source: Raw,
			Patterns: patterns(
				`auto\s*operations?\s*team[:\s]*lead\s*supervisor[:\s]+`+name,
				`auto\s*operations?[:\s]*lead[:\s]+`+name,
				`lead\s*supervisor[:\s]+`+name,
				`colby\s+chapman`,
				`auto.*lead.*([A-Za-z\s]+chapman)`,
				`auto.*([A-Za-z\s]*colby[A-Za-z\s]*)`,
			),
			Normalize: knownPerson("colby", "Colby Chapman"),
		},
		{
			Keys:   []string{"autoOperationsAssistant"},
			Source: Raw,
			Patterns: patterns(
				`auto\s*operations?\s*team[:\s]*assistant\s*supervisor[:\s]+`+name,
				`auto\s*operations?[:\s]*assistant[:\s]+`+name,
				`assistant\s*supervisor[:\s]+`+name,
				`cole\s+bailey`,
				`auto.*assistant.*([A-Za-z\s]+bailey)`,
				`auto.*([A-Za-z\s]*cole[A-Za-z\s]*)`,
			),
			Normalize: knownPerson("cole", "Cole Bailey"),
		},
		{
			Keys:   []string{"heavyHeavyLead"},
			Source: Raw,
			Patterns: patterns(
				`high\s*&?\s*heavy\s*team[:\s]*lead\s*supervisor[:\s]+`+name,
				`high\s*&?\s*heavy[:\s]*lead[:\s]+`+name,
				`heavy\s*equipment[:\s]*lead[:\s]+`+name,
				`spencer\s+wilkins`,
				`heavy.*lead.*([A-Za-z\s]+wilkins)`,
				`heavy.*([A-Za-z\s]*spencer[A-Za-z\s]*)`,
			),
			Normalize: knownPerson("spencer", "Spencer Wilkins"),
		},
		{
			Keys:   []string{"heavyHeavyAssistant"},
			Source: Raw,
			Patterns: patterns(
				`high\s*&?\s*heavy\s*team[:\s]*assistant\s*supervisor[:\s]+`+name,
				`high\s*&?\s*heavy[:\s]*assistant[:\s]+`+name,
				`heavy\s*equipment[:\s]*assistant[:\s]+`+name,
				`bruce\s+banner`,
				`heavy.*assistant.*([A-Za-z\s]+banner)`,
				`heavy.*([A-Za-z\s]*bruce[A-Za-z\s]*)`,
			),
			Normalize: knownPerson("bruce", "Bruce Banner"),
		},
		{
			Keys:   []string{"operationManager"},
			Source: Raw,
			Patterns: patterns(
				`operation\s*manager[:\s]+`+name,
				`manager[:\s]+`+name,
				`your\s*name[:\s]+`+name,
				`john\s+smith`,
				`supervisor[:\s]+`+name,
			),
			Normalize: knownPerson("john", "John Smith"),
		},
	}
}

func scheduleRules() []Rule {
	const clock = `(\d{1,2}:\d{2}(?:\s*[AP]M)?)`
	return []Rule{
		{
			Keys:   []string{"expectedRate"},
			Source: Raw,
			Patterns: patterns(
				`expected\s*rate[:\s]+(\d+(?:\.\d+)?)`,
				`rate[:\s]+(\d+(?:\.\d+)?)\s*cars?/hour`,
				`(\d+(?:\.\d+)?)\s*cars?/hour`,
				`processing\s*rate[:\s]+(\d+(?:\.\d+)?)`,
			),
		},
		{
			Keys:   []string{"totalDrivers"},
			Source: Raw,
			Patterns: patterns(
				`total\s*drivers?[:\s]+(\d+)`,
				`drivers?[:\s]+(\d+)\s*drivers?`,
				`(\d+)\s*drivers?\s*total`,
			),
		},
		{
			Keys:   []string{"shiftStart"},
			Source: Raw,
			Patterns: patterns(
				`shift\s*start[:\s]+`+clock,
				`start\s*time[:\s]+`+clock,
				`(\d{1,2}:\d{2}\s*AM).*shift`,
			),
		},
		{
			Keys:   []string{"shiftEnd"},
			Source: Raw,
			Patterns: patterns(
				`shift\s*end[:\s]+`+clock,
				`end\s*time[:\s]+`+clock,
				`(\d{1,2}:\d{2}\s*PM).*shift`,
			),
		},
		{
			Keys:   []string{"breakDuration"},
			Source: Raw,
			Patterns: patterns(
				`break\s*duration[:\s]+(\d+)`,
				`break[:\s]+(\d+)\s*minutes?`,
				`(\d+)\s*minutes?\s*break`,
			),
		},
	}
}

// vanRules resolves the first four van IDs. When the document carries at
// least four v<digits> tokens anywhere, those tokens overwrite the labelled
// IDs even when every label was found.
func vanRules() []Rule {
	var rules []Rule
	for i := 1; i <= 4; i++ {
		rules = append(rules, Rule{
			Keys:     []string{fmt.Sprintf("van%dId", i)},
			Source:   Raw,
			Patterns: patterns(fmt.Sprintf(`van\s*%d\s*id[:\s]+([A-Za-z0-9]+)`, i)),
		})
	}
	return append(rules, Rule{
		Keys:      []string{"van1Id", "van2Id", "van3Id", "van4Id"},
		Source:    Raw,
		Policy:    Spread,
		Patterns:  patterns(`v(\d+)`),
		Normalize: vanToken,
	})
}

func zoneRules() []Rule {
	var rules []Rule
	for _, z := range []string{"a", "b", "c"} {
		zone := strings.ToUpper(z)
		rules = append(rules,
			Rule{
				Keys:     []string{"zone" + zone},
				Source:   Raw,
				Patterns: patterns(`zone\s*` + z + `[:\s]+(\d+)`),
			},
			Rule{
				Keys:     []string{"zone" + zone + "Description"},
				Source:   Raw,
				Patterns: patterns(`zone\s*` + z + `[:\s]*description[:\s]+([A-Za-z\s\-]+)`),
			},
		)
	}
	return rules
}

// targetRules resolves the vehicle targets for the three storage facilities.
func targetRules() []Rule {
	const count = `[:\s]+(\d+)`
	return []Rule{
		{
			Keys:   []string{"brvTarget"},
			Source: Clean,
			Policy: MaxInt,
			Patterns: patterns(
				`brv\s*terminal`+count,
				`brv\s*total\s*vehicles?`+count,
				`brv`+count,
				`brunswick\s*terminal`+count,
			),
		},
		{
			Keys:   []string{"zeeTarget"},
			Source: Clean,
			Policy: MaxInt,
			Patterns: patterns(
				`zee\s*compound`+count,
				`zee\s*total\s*vehicles?`+count,
				`zee`+count,
				`zee\s*facility`+count,
			),
		},
		{
			Keys:   []string{"souTarget"},
			Source: Clean,
			Policy: MaxInt,
			Patterns: patterns(
				`sou\s*facility`+count,
				`sou\s*total\s*vehicles?`+count,
				`sou`+count,
				`southern\s*facility`+count,
			),
		},
	}
}

func zeeRules() []Rule {
	const count = `[:\s]+(\d+)`
	const text = `[:\s]+([A-Za-z\s\-]+)`
	return []Rule{
		{
			Keys:   []string{"zeeAutomobiles"},
			Source: Raw,
			Patterns: patterns(
				`zee\s*automobiles?`+count,
				`zee\s*compound\s*automobiles?`+count,
				`zee.*automobiles?`+count,
			),
		},
		{
			Keys:   []string{"zeeHeavyEquipment"},
			Source: Raw,
			Patterns: patterns(
				`zee\s*heavy\s*equipment`+count,
				`zee\s*compound\s*heavy`+count,
				`zee.*heavy.*equipment`+count,
			),
		},
		{
			Keys:   []string{"zeeElectricVehicles"},
			Source: Raw,
			Patterns: patterns(
				`zee\s*electric\s*vehicles?`+count,
				`zee\s*compound\s*electric`+count,
				`zee.*electric.*vehicles?`+count,
			),
		},
		{
			Keys:   []string{"zeeStaticCargo"},
			Source: Raw,
			Patterns: patterns(
				`zee\s*static\s*cargo`+count,
				`zee\s*compound\s*static`+count,
				`zee.*static.*cargo`+count,
			),
		},
		{
			Keys:   []string{"zeeCargoType"},
			Source: Raw,
			Patterns: patterns(
				`zee\s*cargo\s*type`+text,
				`zee\s*compound\s*cargo`+text,
				`zee.*cargo.*type`+text,
			),
		},
		{
			Keys:   []string{"zeeCargoValue"},
			Source: Raw,
			Patterns: patterns(
				`zee\s*cargo\s*value`+count,
				`zee\s*compound\s*value`+count,
				`zee.*value`+count,
			),
		},
		{
			Keys:   []string{"zeePriority"},
			Source: Raw,
			Patterns: patterns(
				`zee\s*priority[:\s]+([A-Za-z\s]+)`,
				`zee\s*compound\s*priority[:\s]+([A-Za-z\s]+)`,
				`zee.*priority[:\s]+([A-Za-z\s]+)`,
			),
			Normalize: zeePriority,
		},
	}
}

// ticoRules resolves the transport fleet: van and station wagon counts and
// up to fifteen IDs of each.
func ticoRules() []Rule {
	rules := []Rule{
		{
			Keys:   []string{"numVans"},
			Source: Raw,
			Patterns: patterns(
				`number\s*of\s*vans[:\s]+(\d+)`,
				`vans?[:\s]+(\d+)`,
				`(\d+)\s*vans?`,
			),
		},
		{
			Keys:   []string{"numStationWagons"},
			Source: Raw,
			Patterns: patterns(
				`number\s*of\s*station\s*wagons?[:\s]+(\d+)`,
				`station\s*wagons?[:\s]+(\d+)`,
				`(\d+)\s*station\s*wagons?`,
			),
		},
	}
	for i := 1; i <= 15; i++ {
		rules = append(rules, Rule{
			Keys:     []string{fmt.Sprintf("vanId%d", i)},
			Source:   Raw,
			Patterns: patterns(fmt.Sprintf(`van\s*%d\s*id[:\s]+([A-Za-z0-9]+)`, i)),
		})
	}
	for i := 1; i <= 15; i++ {
		rules = append(rules, Rule{
			Keys:     []string{fmt.Sprintf("wagonId%d", i)},
			Source:   Raw,
			Patterns: patterns(fmt.Sprintf(`(?:station\s*wagon|wagon)\s*%d\s*id[:\s]+([A-Za-z0-9]+)`, i)),
		})
	}
	return rules
}
