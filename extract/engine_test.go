package extract_test

import (
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/harborline/shipdesk"
	"github.com/harborline/shipdesk/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Extract(t *testing.T) {
	t.Parallel()

	engine := extract.NewEngine()

	t.Run("empty text yields no fields", func(t *testing.T) {
		t.Parallel()

		fields := engine.Extract("")

		require.NotNil(t, fields)
		assert.Empty(t, fields)
	})

	t.Run("never panics on odd input", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			"\xff\xfe\xfd",
			"=== PAGE === END PAGE ===",
			strings.Repeat("vessel ship berth ", 2000),
			strings.Repeat("9", 40) + " automobiles",
			"Date: 99/99/9999 Date: 1/2/3",
		}
		for _, in := range inputs {
			assert.NotPanics(t, func() { engine.Extract(in) })
		}
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		text := "Vessel Name: Ocean Star\nBerth 2\nTotal Vehicles: 120"
		want := engine.Extract(text)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.Equal(t, want, engine.Extract(text))
			}()
		}
		wg.Wait()
	})

	t.Run("matches text split across a page boundary", func(t *testing.T) {
		t.Parallel()

		text := "Vessel Name:\n=== END PAGE 1 ===\n=== PAGE 2 OF 2 ===\nOcean Star"

		fields := engine.Extract(text)

		assert.Equal(t, "Ocean Star", fields["vesselName"])
	})
}

func TestEngine_VesselName(t *testing.T) {
	t.Parallel()

	engine := extract.NewEngine()

	t.Run("reads labelled name", func(t *testing.T) {
		t.Parallel()
		fields := engine.Extract("Vessel Name: Spirit of Auto")
		assert.Equal(t, "Spirit of Auto", fields["vesselName"])
	})

	t.Run("absent when nothing names a vessel", func(t *testing.T) {
		t.Parallel()
		fields := engine.Extract("Cargo manifest pending review")
		assert.NotContains(t, fields, "vesselName")
	})

	t.Run("rejects generic words and short names", func(t *testing.T) {
		t.Parallel()
		assert.NotContains(t, engine.Extract("Vessel: Details"), "vesselName")
		assert.NotContains(t, engine.Extract("Vessel: ab"), "vesselName")
	})

	t.Run("reads motor vessel prefix", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Aurora Leader", engine.Extract("MV Aurora Leader")["vesselName"])
	})
}

func TestEngine_VesselType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"Vessel Type: Auto Carrier", "Auto Carrier"},
		{"Vessel Type: RoRo", "RoRo Vessel"},
		{"Vessel Type: Container", "Container Ship"},
		{"Ship Type: Multi-Purpose", "Multi-Purpose"},
		{"Our vehicle carrier arrives", "Auto Carrier"},
	}

	engine := extract.NewEngine()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, engine.Extract(tt.text)["vesselType"])
		})
	}
}

func TestEngine_Port(t *testing.T) {
	t.Parallel()

	engine := extract.NewEngine()

	t.Run("colonel forces canonical name", func(t *testing.T) {
		t.Parallel()
		fields := engine.Extract("Port: Colonel Island Terminal")
		assert.Equal(t, "Colonel Island", fields["port"])
	})

	t.Run("keeps free text", func(t *testing.T) {
		t.Parallel()
		fields := engine.Extract("Destination: Savannah")
		assert.Equal(t, "Savannah", fields["port"])
	})

	t.Run("rejects single character berth numbers", func(t *testing.T) {
		t.Parallel()
		fields := engine.Extract("Berth 2")
		assert.NotContains(t, fields, "port")
	})
}

func TestEngine_OperationDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"iso date", "Date: 2025-03-14", "2025-03-14"},
		{"us date", "ETA 07/04/2025", "2025-07-04"},
		{"short us date", "Date: 3/5/2024", "2024-03-05"},
	}

	engine := extract.NewEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, engine.Extract(tt.text)["operationDate"])
		})
	}

	t.Run("ignores day first dashed dates", func(t *testing.T) {
		t.Parallel()
		assert.NotContains(t, engine.Extract("ETA 03-14-2025"), "operationDate")
	})
}

func TestEngine_Company(t *testing.T) {
	t.Parallel()

	engine := extract.NewEngine()

	t.Run("canonical name from keyword", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Ports America", engine.Extract("Company: Ports America")["company"])
	})

	t.Run("free text otherwise", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Gulf Coast Handlers", engine.Extract("Stevedoring: Gulf Coast Handlers")["company"])
	})
}

func TestEngine_VehicleCounts(t *testing.T) {
	t.Parallel()

	engine := extract.NewEngine()

	t.Run("takes the largest match of the winning pattern", func(t *testing.T) {
		t.Parallel()

		fields := engine.Extract("Automobiles: 40 on deck 3. Automobiles: 120 in total")

		assert.Equal(t, 120, fields["totalAutomobilesDischarge"])
		assert.Equal(t, 120, fields["totalAutomobiles"])
		assert.Equal(t, 120, fields["automobiles"])
	})

	t.Run("earlier patterns win over later ones", func(t *testing.T) {
		t.Parallel()

		fields := engine.Extract("automobiles: 40\ntotal vehicles: 120")

		assert.Equal(t, 120, fields["automobiles"])
	})

	t.Run("oversized count saturates instead of falling through", func(t *testing.T) {
		t.Parallel()

		fields := engine.Extract("total vehicles: 9999999999999999999999\n40 cars")

		assert.Equal(t, math.MaxInt, fields["automobiles"])
		assert.Equal(t, math.MaxInt, fields["totalAutomobilesDischarge"])
	})

	t.Run("heavy equipment fans out to both keys", func(t *testing.T) {
		t.Parallel()

		fields := engine.Extract("Heavy Equipment: 12, HH: 30")

		assert.Equal(t, 12, fields["heavyEquipmentDischarge"])
		assert.Equal(t, 12, fields["heavyEquipment"])
	})

	t.Run("facility targets", func(t *testing.T) {
		t.Parallel()

		fields := engine.Extract("BRV Terminal: 300\nBRV: 500\nZEE: 80 ZEE: 95\nSOU Facility: 45")

		assert.Equal(t, 300, fields["brvTarget"])
		assert.Equal(t, 95, fields["zeeTarget"])
		assert.Equal(t, 45, fields["souTarget"])
	})
}

func TestEngine_Brands(t *testing.T) {
	t.Parallel()

	fields := extract.NewEngine().Extract("BMW: 25\nMercedes-Benz: 40\nLR: 7\nAudi: 12")

	assert.Equal(t, 25, fields["bmwCount"])
	assert.Equal(t, 40, fields["mbCount"])
	assert.Equal(t, 7, fields["lrCount"])
	assert.NotContains(t, fields, "rrCount")
	assert.Equal(t, "12", fields["audi"])
}

func TestEngine_OperationType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"Operation: discharge and loading", "Discharge + Loading"},
		{"Operation: discharge + loading", "Discharge + Loading"},
		{"Operation: discharge", "Discharge Only"},
		{"Discharge only", "Discharge Only"},
		{"Loading operation", "Loading Only"},
		{"Work Type: both", "Discharge + Loading"},
	}

	engine := extract.NewEngine()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, engine.Extract(tt.text)["operationType"])
		})
	}
}

func TestEngine_Team(t *testing.T) {
	t.Parallel()

	engine := extract.NewEngine()

	t.Run("role labels", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Maria Lopez", engine.Extract("Lead Supervisor: Maria Lopez")["autoOperationsLead"])
		assert.Equal(t, "Dana Cruz", engine.Extract("High & Heavy Lead: Dana Cruz")["heavyHeavyLead"])
		assert.Equal(t, "Priya Nair", engine.Extract("Operation Manager: Priya Nair")["operationManager"])
	})

	t.Run("known first names resolve to full names", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Colby Chapman", engine.Extract("Auto ops with colby on shift")["autoOperationsLead"])
		assert.Equal(t, "Bruce Banner", engine.Extract("Heavy crew: bruce")["heavyHeavyAssistant"])
		assert.Equal(t, "John Smith", engine.Extract("Manager: Ellen Johnson")["operationManager"])
	})
}

func TestEngine_Berth(t *testing.T) {
	t.Parallel()

	engine := extract.NewEngine()

	t.Run("fans out to alias keys", func(t *testing.T) {
		t.Parallel()

		fields := engine.Extract("Berth 2")

		assert.Equal(t, "Berth 2", fields["berth"])
		assert.Equal(t, "Berth 2", fields["berthLocation"])
		assert.Equal(t, "Berth 2", fields["berthAssignment"])
	})

	t.Run("title cases full berth names", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Berth 2A", engine.Extract("Berth Location: BERTH 2a")["berth"])
	})

	t.Run("other references map to the first known berth", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Berth 2", engine.Extract("Dock: 2")["berth"])
		assert.Equal(t, "Berth 1", engine.Extract("Wharf: West 12")["berth"])
	})

	t.Run("unknown berths are ignored", func(t *testing.T) {
		t.Parallel()
		assert.NotContains(t, engine.Extract("Berth 5"), "berth")
	})
}

func TestEngine_Schedule(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"Expected Rate: 150 cars/hour",
		"Total Drivers: 30",
		"Shift Start: 7:00 AM",
		"Shift End: 3:30 PM",
		"Break: 45 minutes",
	}, "\n")

	fields := extract.NewEngine().Extract(text)

	assert.Equal(t, "150", fields["expectedRate"])
	assert.Equal(t, "30", fields["totalDrivers"])
	assert.Equal(t, "7:00 AM", fields["shiftStart"])
	assert.Equal(t, "3:30 PM", fields["shiftEnd"])
	assert.Equal(t, "45", fields["breakDuration"])
}

func TestEngine_RawTextUnicodeSpaces(t *testing.T) {
	t.Parallel()

	fields := extract.NewEngine().Extract("Total\u00a0Drivers:\u00a030")

	assert.Equal(t, "30", fields["totalDrivers"])
}

func TestEngine_VanIDs(t *testing.T) {
	t.Parallel()

	engine := extract.NewEngine()

	t.Run("labelled ids", func(t *testing.T) {
		t.Parallel()

		fields := engine.Extract("Van 1 ID: TX100\nVan 2 ID: TX200")

		assert.Equal(t, "TX100", fields["van1Id"])
		assert.Equal(t, "TX200", fields["van2Id"])
		assert.Equal(t, "TX100", fields["vanId1"])
		assert.NotContains(t, fields, "van3Id")
	})

	t.Run("four generic tokens replace labelled ids", func(t *testing.T) {
		t.Parallel()

		fields := engine.Extract("Van 1 ID: TX100\nFleet: V11, V12, V13, V14")

		assert.Equal(t, "V11", fields["van1Id"])
		assert.Equal(t, "V12", fields["van2Id"])
		assert.Equal(t, "V13", fields["van3Id"])
		assert.Equal(t, "V14", fields["van4Id"])
		assert.Equal(t, "TX100", fields["vanId1"])
	})

	t.Run("fewer than four generic tokens are ignored", func(t *testing.T) {
		t.Parallel()

		fields := engine.Extract("Fleet: V11, V12, V13")

		assert.NotContains(t, fields, "van1Id")
	})

	t.Run("wagon ids", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "SW22", engine.Extract("Wagon 2 ID: SW22")["wagonId2"])
	})
}

func TestEngine_ZonesAndZee(t *testing.T) {
	t.Parallel()

	engine := extract.NewEngine()

	t.Run("zone allocation and description", func(t *testing.T) {
		t.Parallel()

		fields := engine.Extract("Zone A: 120\nZone A Description: Covered storage")

		assert.Equal(t, "120", fields["zoneA"])
		assert.Equal(t, "Covered storage", fields["zoneADescription"])
	})

	t.Run("zee priority is classified", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "urgent", engine.Extract("ZEE Priority: Urgent delivery")["zeePriority"])
		assert.Equal(t, "standard", engine.Extract("ZEE Priority: normal")["zeePriority"])
	})

	t.Run("tico fleet counts", func(t *testing.T) {
		t.Parallel()

		fields := engine.Extract("Number of Vans: 4\nStation Wagons: 6")

		assert.Equal(t, "4", fields["numVans"])
		assert.Equal(t, "6", fields["numStationWagons"])
	})
}

func TestNewEngine_CustomRules(t *testing.T) {
	t.Parallel()

	rule := extract.Rule{
		Keys:     []string{"hatch"},
		Source:   extract.Clean,
		Patterns: extract.DefaultRules()[0].Patterns[:1],
		Normalize: func(c extract.Candidate) (any, bool) {
			return strings.ToUpper(c.Value), true
		},
	}

	fields := extract.NewEngine(rule).Extract("Vessel Name: Ocean Star")

	assert.Equal(t, shipdesk.Fields{"hatch": "OCEAN STAR"}, fields)
}
