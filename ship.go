package shipdesk

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Ship operation statuses.
const (
	StatusActive    = "active"
	StatusLoading   = "loading"
	StatusDischarge = "discharge"
	StatusComplete  = "complete"
	StatusPaused    = "paused"
)

// Statuses lists every valid ship status in display order.
var Statuses = []string{StatusActive, StatusLoading, StatusDischarge, StatusComplete, StatusPaused}

// DateLayout is the layout of operation dates.
const DateLayout = "2006-01-02"

// Ship represents a single vessel operation at the terminal.
type Ship struct {
	ID                        int    `json:"id"`
	VesselName                string `json:"vesselName"`
	VesselType                string `json:"vesselType"`
	ShippingLine              string `json:"shippingLine"`
	Port                      string `json:"port"`
	OperationDate             string `json:"operationDate"`
	Company                   string `json:"company"`
	OperationType             string `json:"operationType"`
	Berth                     string `json:"berth"`
	OperationManager          string `json:"operationManager"`
	AutoOpsLead               string `json:"autoOpsLead"`
	AutoOpsAssistant          string `json:"autoOpsAssistant"`
	HeavyOpsLead              string `json:"heavyOpsLead"`
	HeavyOpsAssistant         string `json:"heavyOpsAssistant"`
	TotalVehicles             int    `json:"totalVehicles"`
	TotalAutomobilesDischarge int    `json:"totalAutomobilesDischarge"`
	HeavyEquipmentDischarge   int    `json:"heavyEquipmentDischarge"`
	TotalElectricVehicles     int    `json:"totalElectricVehicles"`
	TotalStaticCargo          int    `json:"totalStaticCargo"`
	BRVTarget                 int    `json:"brvTarget"`
	ZEETarget                 int    `json:"zeeTarget"`
	SOUTarget                 int    `json:"souTarget"`
	ExpectedRate              int    `json:"expectedRate"`
	TotalDrivers              int    `json:"totalDrivers"`
	ShiftStart                string `json:"shiftStart"`
	ShiftEnd                  string `json:"shiftEnd"`
	BreakDuration             int    `json:"breakDuration"`
	TargetCompletion          string `json:"targetCompletion"`
	TicoVans                  int    `json:"ticoVans"`
	TicoStationWagons         int    `json:"ticoStationWagons"`
	Status                    string `json:"status"`
	Progress                  int    `json:"progress"`
	StartTime                 string `json:"startTime"`
	EstimatedCompletion       string `json:"estimatedCompletion"`

	// Dashboard widget payloads. Stored and returned verbatim.
	DeckData       json.RawMessage `json:"deck_data"`
	TurnaroundData json.RawMessage `json:"turnaround_data"`
	InventoryData  json.RawMessage `json:"inventory_data"`
	HourlyData     json.RawMessage `json:"hourly_quantity_data"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the ship contains invalid fields.
func (s *Ship) Validate() error {
	if strings.TrimSpace(s.VesselName) == "" {
		return Errorf(EINVALID, "Vessel name is required")
	}
	if !IsValidStatus(s.Status) {
		return Errorf(EINVALID, "Status must be one of: %s", strings.Join(Statuses, ", "))
	}
	if s.Progress < 0 || s.Progress > 100 {
		return Errorf(EINVALID, "Progress must be a number between 0 and 100")
	}
	if s.OperationDate != "" {
		if _, err := time.Parse(DateLayout, s.OperationDate); err != nil {
			return Errorf(EINVALID, "Operation date must be YYYY-MM-DD")
		}
	}
	return nil
}

// IsValidStatus reports whether status is a known ship status.
func IsValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// Widget identifies one of the dashboard payloads attached to a ship.
type Widget string

// Widget payload kinds. The value is also the request body key.
const (
	WidgetDecks      Widget = "decks"
	WidgetTurnaround Widget = "turnaround"
	WidgetInventory  Widget = "inventory"
	WidgetHourly     Widget = "hourly"
)

// Widgets lists every widget kind.
var Widgets = []Widget{WidgetDecks, WidgetTurnaround, WidgetInventory, WidgetHourly}

// ShipService represents a service for managing ship operations.
type ShipService interface {
	// CreateShip persists a new ship and assigns its ID and timestamps.
	CreateShip(ctx context.Context, ship *Ship) error

	// FindShipByID retrieves a ship by ID.
	// Returns ENOTFOUND if ship does not exist.
	FindShipByID(ctx context.Context, id int) (*Ship, error)

	// FindShips retrieves ships matching the filter, oldest first.
	FindShips(ctx context.Context, filter ShipFilter) ([]*Ship, error)

	// CountShips returns the total number of ships.
	CountShips(ctx context.Context) (int, error)

	// UpdateShip applies a partial update to a ship.
	// Returns ENOTFOUND if ship does not exist.
	UpdateShip(ctx context.Context, id int, upd ShipUpdate) (*Ship, error)

	// SetShipWidget replaces one dashboard payload of a ship.
	// Returns ENOTFOUND if ship does not exist.
	SetShipWidget(ctx context.Context, id int, widget Widget, data json.RawMessage) error

	// DeleteShip permanently removes a ship.
	// Returns ENOTFOUND if ship does not exist.
	DeleteShip(ctx context.Context, id int) error
}

// ShipFilter represents a filter for FindShips.
type ShipFilter struct {
	ID            *int    `json:"id"`
	Status        *string `json:"status"`
	ExcludeStatus *string `json:"excludeStatus"`

	// Inclusive operation date range, YYYY-MM-DD.
	OperationDateFrom *string `json:"operationDateFrom"`
	OperationDateTo   *string `json:"operationDateTo"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ShipUpdate represents fields that can be updated on a ship.
// Nil fields are left unchanged.
type ShipUpdate struct {
	VesselName                *string `json:"vesselName"`
	VesselType                *string `json:"vesselType"`
	ShippingLine              *string `json:"shippingLine"`
	Port                      *string `json:"port"`
	OperationDate             *string `json:"operationDate"`
	Company                   *string `json:"company"`
	OperationType             *string `json:"operationType"`
	Berth                     *string `json:"berth"`
	OperationManager          *string `json:"operationManager"`
	AutoOpsLead               *string `json:"autoOpsLead"`
	AutoOpsAssistant          *string `json:"autoOpsAssistant"`
	HeavyOpsLead              *string `json:"heavyOpsLead"`
	HeavyOpsAssistant         *string `json:"heavyOpsAssistant"`
	TotalVehicles             *int    `json:"totalVehicles"`
	TotalAutomobilesDischarge *int    `json:"totalAutomobilesDischarge"`
	HeavyEquipmentDischarge   *int    `json:"heavyEquipmentDischarge"`
	TotalElectricVehicles     *int    `json:"totalElectricVehicles"`
	TotalStaticCargo          *int    `json:"totalStaticCargo"`
	BRVTarget                 *int    `json:"brvTarget"`
	ZEETarget                 *int    `json:"zeeTarget"`
	SOUTarget                 *int    `json:"souTarget"`
	ExpectedRate              *int    `json:"expectedRate"`
	TotalDrivers              *int    `json:"totalDrivers"`
	ShiftStart                *string `json:"shiftStart"`
	ShiftEnd                  *string `json:"shiftEnd"`
	BreakDuration             *int    `json:"breakDuration"`
	TargetCompletion          *string `json:"targetCompletion"`
	TicoVans                  *int    `json:"ticoVans"`
	TicoStationWagons         *int    `json:"ticoStationWagons"`
	Status                    *string `json:"status"`
	Progress                  *int    `json:"progress"`
	StartTime                 *string `json:"startTime"`
	EstimatedCompletion       *string `json:"estimatedCompletion"`
}

// Apply copies every non-nil field of u onto s.
func (u *ShipUpdate) Apply(s *Ship) {
	setString(&s.VesselName, u.VesselName)
	setString(&s.VesselType, u.VesselType)
	setString(&s.ShippingLine, u.ShippingLine)
	setString(&s.Port, u.Port)
	setString(&s.OperationDate, u.OperationDate)
	setString(&s.Company, u.Company)
	setString(&s.OperationType, u.OperationType)
	setString(&s.Berth, u.Berth)
	setString(&s.OperationManager, u.OperationManager)
	setString(&s.AutoOpsLead, u.AutoOpsLead)
	setString(&s.AutoOpsAssistant, u.AutoOpsAssistant)
	setString(&s.HeavyOpsLead, u.HeavyOpsLead)
	setString(&s.HeavyOpsAssistant, u.HeavyOpsAssistant)
	setInt(&s.TotalVehicles, u.TotalVehicles)
	setInt(&s.TotalAutomobilesDischarge, u.TotalAutomobilesDischarge)
	setInt(&s.HeavyEquipmentDischarge, u.HeavyEquipmentDischarge)
	setInt(&s.TotalElectricVehicles, u.TotalElectricVehicles)
	setInt(&s.TotalStaticCargo, u.TotalStaticCargo)
	setInt(&s.BRVTarget, u.BRVTarget)
	setInt(&s.ZEETarget, u.ZEETarget)
	setInt(&s.SOUTarget, u.SOUTarget)
	setInt(&s.ExpectedRate, u.ExpectedRate)
	setInt(&s.TotalDrivers, u.TotalDrivers)
	setString(&s.ShiftStart, u.ShiftStart)
	setString(&s.ShiftEnd, u.ShiftEnd)
	setInt(&s.BreakDuration, u.BreakDuration)
	setString(&s.TargetCompletion, u.TargetCompletion)
	setInt(&s.TicoVans, u.TicoVans)
	setInt(&s.TicoStationWagons, u.TicoStationWagons)
	setString(&s.Status, u.Status)
	setInt(&s.Progress, u.Progress)
	setString(&s.StartTime, u.StartTime)
	setString(&s.EstimatedCompletion, u.EstimatedCompletion)
}

// ProgressUpdate returns the update that records progress on a ship.
// Reaching 100 completes the operation; any other positive value marks it active.
func ProgressUpdate(progress float64) (ShipUpdate, error) {
	if progress < 0 || progress > 100 {
		return ShipUpdate{}, Errorf(EINVALID, "Progress must be a number between 0 and 100")
	}
	p := int(progress)
	upd := ShipUpdate{Progress: &p}
	switch {
	case progress >= 100:
		upd.Status = ptr(StatusComplete)
	case progress > 0:
		upd.Status = ptr(StatusActive)
	}
	return upd, nil
}

// StatusUpdate returns the update that moves a ship to status.
func StatusUpdate(status string) (ShipUpdate, error) {
	if !IsValidStatus(status) {
		return ShipUpdate{}, Errorf(EINVALID, "Status must be one of: %s", strings.Join(Statuses, ", "))
	}
	return ShipUpdate{Status: &status}, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func ptr[T any](v T) *T { return &v }
