package shipdesk

// NewShipInputFromFields maps extracted document fields onto a ship creation
// payload. Fields that were not found stay nil so NewShip applies its defaults.
// The total vehicle count is the sum of automobiles and heavy equipment when
// either was found.
func NewShipInputFromFields(f Fields) ShipInput {
	var in ShipInput

	in.VesselName = stringField(f, "vesselName")
	in.VesselType = stringField(f, "vesselType")
	in.Port = stringField(f, "port")
	in.OperationDate = stringField(f, "operationDate")
	in.Company = stringField(f, "company")
	in.OperationType = stringField(f, "operationType")
	in.BerthLocation = stringField(f, "berthLocation")
	in.OperationManager = stringField(f, "operationManager")
	in.AutoOpsLead = stringField(f, "autoOperationsLead")
	in.AutoOpsAssistant = stringField(f, "autoOperationsAssistant")
	in.HeavyOpsLead = stringField(f, "heavyHeavyLead")
	in.HeavyOpsAssistant = stringField(f, "heavyHeavyAssistant")
	in.ShiftStart = stringField(f, "shiftStart")
	in.ShiftEnd = stringField(f, "shiftEnd")

	in.TotalAutomobilesDischarge = intField(f, "totalAutomobilesDischarge")
	in.HeavyEquipmentDischarge = intField(f, "heavyEquipmentDischarge")
	in.TotalElectricVehicles = intField(f, "electricVehicles")
	in.TotalStaticCargo = intField(f, "staticCargo")
	in.BRVTarget = intField(f, "brvTarget")
	in.ZEETarget = intField(f, "zeeTarget")
	in.SOUTarget = intField(f, "souTarget")
	in.ExpectedRate = intField(f, "expectedRate")
	in.TotalDrivers = intField(f, "totalDrivers")
	in.BreakDuration = intField(f, "breakDuration")
	in.TicoVans = intField(f, "numVans")
	in.TicoStationWagons = intField(f, "numStationWagons")

	if in.TotalAutomobilesDischarge != nil || in.HeavyEquipmentDischarge != nil {
		total := intOr(in.TotalAutomobilesDischarge, 0) + intOr(in.HeavyEquipmentDischarge, 0)
		in.TotalVehicles = &total
	}

	return in
}

func stringField(f Fields, key string) *string {
	v, ok := f.String(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}

func intField(f Fields, key string) *int {
	v, ok := f.Int(key)
	if !ok {
		return nil
	}
	return &v
}
