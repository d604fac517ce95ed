package shipdesk

import (
	"strings"
	"time"
)

// Defaults applied to a new ship operation when the request omits a field.
const (
	DefaultVesselType        = "Auto Only"
	DefaultShippingLine      = "Unknown"
	DefaultPort              = "Colonel Island"
	DefaultCompany           = "APS Stevedoring"
	DefaultOperationType     = "Discharge Only"
	DefaultBerth             = "Berth 1"
	DefaultOperationManager  = "Manager"
	DefaultAutoOpsLead       = "Lead"
	DefaultAutoOpsAssistant  = "Assistant"
	DefaultHeavyOpsLead      = "Heavy Lead"
	DefaultHeavyOpsAssistant = "Heavy Assistant"
	DefaultTotalVehicles     = 100
	DefaultExpectedRate      = 150
	DefaultTotalDrivers      = 30
	DefaultShiftStart        = "07:00"
	DefaultShiftEnd          = "15:00"
)

// ShipInput is the payload used to create a ship operation. Fields left nil
// take the defaults above. The berth is read from BerthLocation first.
type ShipInput struct {
	ShipUpdate
	BerthLocation *string `json:"berthLocation"`
}

// NewShip builds a ship from in, filling every omitted field with its default.
// New ships always start active with zero progress.
func NewShip(in ShipInput, now time.Time) (*Ship, error) {
	name := ""
	if in.VesselName != nil {
		name = strings.TrimSpace(*in.VesselName)
	}
	if name == "" {
		return nil, Errorf(EINVALID, "Vessel name is required")
	}

	opDate := now.Format(DateLayout)
	if in.OperationDate != nil && *in.OperationDate != "" {
		if _, err := time.Parse(DateLayout, *in.OperationDate); err != nil {
			return nil, Errorf(EINVALID, "Operation date must be YYYY-MM-DD")
		}
		opDate = *in.OperationDate
	}

	berth := DefaultBerth
	if in.BerthLocation != nil {
		berth = *in.BerthLocation
	} else if in.Berth != nil {
		berth = *in.Berth
	}

	totalVehicles := intOr(in.TotalVehicles, DefaultTotalVehicles)
	shiftStart := stringOr(in.ShiftStart, DefaultShiftStart)
	shiftEnd := stringOr(in.ShiftEnd, DefaultShiftEnd)

	return &Ship{
		VesselName:                name,
		VesselType:                stringOr(in.VesselType, DefaultVesselType),
		ShippingLine:              stringOr(in.ShippingLine, DefaultShippingLine),
		Port:                      stringOr(in.Port, DefaultPort),
		OperationDate:             opDate,
		Company:                   stringOr(in.Company, DefaultCompany),
		OperationType:             stringOr(in.OperationType, DefaultOperationType),
		Berth:                     berth,
		OperationManager:          stringOr(in.OperationManager, DefaultOperationManager),
		AutoOpsLead:               stringOr(in.AutoOpsLead, DefaultAutoOpsLead),
		AutoOpsAssistant:          stringOr(in.AutoOpsAssistant, DefaultAutoOpsAssistant),
		HeavyOpsLead:              stringOr(in.HeavyOpsLead, DefaultHeavyOpsLead),
		HeavyOpsAssistant:         stringOr(in.HeavyOpsAssistant, DefaultHeavyOpsAssistant),
		TotalVehicles:             max(totalVehicles, 1),
		TotalAutomobilesDischarge: intOr(in.TotalAutomobilesDischarge, totalVehicles),
		HeavyEquipmentDischarge:   intOr(in.HeavyEquipmentDischarge, 0),
		TotalElectricVehicles:     intOr(in.TotalElectricVehicles, 0),
		TotalStaticCargo:          intOr(in.TotalStaticCargo, 0),
		BRVTarget:                 intOr(in.BRVTarget, 0),
		ZEETarget:                 intOr(in.ZEETarget, 0),
		SOUTarget:                 intOr(in.SOUTarget, totalVehicles),
		ExpectedRate:              max(intOr(in.ExpectedRate, DefaultExpectedRate), 1),
		TotalDrivers:              max(intOr(in.TotalDrivers, DefaultTotalDrivers), 1),
		ShiftStart:                shiftStart,
		ShiftEnd:                  shiftEnd,
		BreakDuration:             intOr(in.BreakDuration, 0),
		TargetCompletion:          stringOr(in.TargetCompletion, ""),
		TicoVans:                  intOr(in.TicoVans, 0),
		TicoStationWagons:         intOr(in.TicoStationWagons, 0),
		Status:                    StatusActive,
		Progress:                  0,
		StartTime:                 shiftStart,
		EstimatedCompletion:       stringOr(in.TargetCompletion, shiftEnd),
	}, nil
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
