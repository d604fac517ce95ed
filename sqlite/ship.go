package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/harborline/shipdesk"
)

// Compile-time interface verification.
var _ shipdesk.ShipService = (*ShipService)(nil)

// shipFields are the writable ship columns, in shipValues order.
var shipFields = []string{
	"vessel_name", "vessel_type", "shipping_line", "port", "operation_date",
	"company", "operation_type", "berth", "operation_manager",
	"auto_ops_lead", "auto_ops_assistant", "heavy_ops_lead", "heavy_ops_assistant",
	"total_vehicles", "total_automobiles_discharge", "heavy_equipment_discharge",
	"total_electric_vehicles", "total_static_cargo",
	"brv_target", "zee_target", "sou_target", "expected_rate", "total_drivers",
	"shift_start", "shift_end", "break_duration", "target_completion",
	"tico_vans", "tico_station_wagons",
	"status", "progress", "start_time", "estimated_completion",
}

// widgetColumns maps each dashboard widget to the column holding its payload.
var widgetColumns = map[shipdesk.Widget]string{
	shipdesk.WidgetDecks:      "deck_data",
	shipdesk.WidgetTurnaround: "turnaround_data",
	shipdesk.WidgetInventory:  "inventory_data",
	shipdesk.WidgetHourly:     "hourly_quantity_data",
}

var (
	selectShipSQL = "SELECT id, " + strings.Join(shipFields, ", ") +
		", deck_data, turnaround_data, inventory_data, hourly_quantity_data, created_at, updated_at FROM ships"

	insertShipSQL = "INSERT INTO ships (" + strings.Join(shipFields, ", ") +
		", deck_data, turnaround_data, inventory_data, hourly_quantity_data, created_at, updated_at) VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(shipFields)+6), ", ") + ")"

	updateShipSQL = "UPDATE ships SET " + strings.Join(shipFields, " = ?, ") + " = ?, updated_at = ? WHERE id = ?"
)

func shipValues(s *shipdesk.Ship) []any {
	return []any{
		s.VesselName, s.VesselType, s.ShippingLine, s.Port, s.OperationDate,
		s.Company, s.OperationType, s.Berth, s.OperationManager,
		s.AutoOpsLead, s.AutoOpsAssistant, s.HeavyOpsLead, s.HeavyOpsAssistant,
		s.TotalVehicles, s.TotalAutomobilesDischarge, s.HeavyEquipmentDischarge,
		s.TotalElectricVehicles, s.TotalStaticCargo,
		s.BRVTarget, s.ZEETarget, s.SOUTarget, s.ExpectedRate, s.TotalDrivers,
		s.ShiftStart, s.ShiftEnd, s.BreakDuration, s.TargetCompletion,
		s.TicoVans, s.TicoStationWagons,
		s.Status, s.Progress, s.StartTime, s.EstimatedCompletion,
	}
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanShip(row scanner) (*shipdesk.Ship, error) {
	var s shipdesk.Ship
	var deck, turnaround, inventory, hourly *string
	var createdAt, updatedAt string

	err := row.Scan(&s.ID,
		&s.VesselName, &s.VesselType, &s.ShippingLine, &s.Port, &s.OperationDate,
		&s.Company, &s.OperationType, &s.Berth, &s.OperationManager,
		&s.AutoOpsLead, &s.AutoOpsAssistant, &s.HeavyOpsLead, &s.HeavyOpsAssistant,
		&s.TotalVehicles, &s.TotalAutomobilesDischarge, &s.HeavyEquipmentDischarge,
		&s.TotalElectricVehicles, &s.TotalStaticCargo,
		&s.BRVTarget, &s.ZEETarget, &s.SOUTarget, &s.ExpectedRate, &s.TotalDrivers,
		&s.ShiftStart, &s.ShiftEnd, &s.BreakDuration, &s.TargetCompletion,
		&s.TicoVans, &s.TicoStationWagons,
		&s.Status, &s.Progress, &s.StartTime, &s.EstimatedCompletion,
		&deck, &turnaround, &inventory, &hourly,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	s.DeckData = scanJSON(deck)
	s.TurnaroundData = scanJSON(turnaround)
	s.InventoryData = scanJSON(inventory)
	s.HourlyData = scanJSON(hourly)

	if s.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &s, nil
}

// ShipService implements shipdesk.ShipService using SQLite.
type ShipService struct {
	db *DB
}

// NewShipService creates a new ShipService.
func NewShipService(db *DB) *ShipService {
	return &ShipService{db: db}
}

// CreateShip creates a new ship.
func (s *ShipService) CreateShip(ctx context.Context, ship *shipdesk.Ship) error {
	if err := ship.Validate(); err != nil {
		return err
	}

	now := s.db.Now()
	ship.CreatedAt = now
	ship.UpdatedAt = now

	args := append(shipValues(ship),
		nullJSON(ship.DeckData), nullJSON(ship.TurnaroundData),
		nullJSON(ship.InventoryData), nullJSON(ship.HourlyData),
		now.Format(time.RFC3339), now.Format(time.RFC3339))

	result, err := s.db.ExecContext(ctx, insertShipSQL, args...)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	ship.ID = int(id)
	return nil
}

// FindShipByID retrieves a ship by ID.
func (s *ShipService) FindShipByID(ctx context.Context, id int) (*shipdesk.Ship, error) {
	ship, err := scanShip(s.db.QueryRowContext(ctx, selectShipSQL+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, shipdesk.Errorf(shipdesk.ENOTFOUND, "Ship not found")
	}
	if err != nil {
		return nil, err
	}
	return ship, nil
}

// FindShips retrieves ships matching the filter in creation order.
func (s *ShipService) FindShips(ctx context.Context, filter shipdesk.ShipFilter) ([]*shipdesk.Ship, error) {
	var query strings.Builder
	var args []any

	query.WriteString(selectShipSQL)
	query.WriteString(" WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}
	if filter.ExcludeStatus != nil {
		query.WriteString(" AND status != ?")
		args = append(args, *filter.ExcludeStatus)
	}
	if filter.OperationDateFrom != nil {
		query.WriteString(" AND operation_date >= ?")
		args = append(args, *filter.OperationDateFrom)
	}
	if filter.OperationDateTo != nil {
		query.WriteString(" AND operation_date <= ?")
		args = append(args, *filter.OperationDateTo)
	}

	query.WriteString(" ORDER BY id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ships := make([]*shipdesk.Ship, 0)
	for rows.Next() {
		ship, err := scanShip(rows)
		if err != nil {
			return nil, err
		}
		ships = append(ships, ship)
	}
	return ships, rows.Err()
}

// CountShips returns the total number of ships.
func (s *ShipService) CountShips(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ships").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// UpdateShip applies upd to an existing ship.
func (s *ShipService) UpdateShip(ctx context.Context, id int, upd shipdesk.ShipUpdate) (*shipdesk.Ship, error) {
	ship, err := s.FindShipByID(ctx, id)
	if err != nil {
		return nil, err
	}

	upd.Apply(ship)
	if err := ship.Validate(); err != nil {
		return nil, err
	}
	ship.UpdatedAt = s.db.Now()

	args := append(shipValues(ship), ship.UpdatedAt.Format(time.RFC3339), id)
	if _, err := s.db.ExecContext(ctx, updateShipSQL, args...); err != nil {
		return nil, err
	}
	return ship, nil
}

// SetShipWidget replaces one dashboard payload of a ship.
func (s *ShipService) SetShipWidget(ctx context.Context, id int, widget shipdesk.Widget, data json.RawMessage) error {
	column, ok := widgetColumns[widget]
	if !ok {
		return shipdesk.Errorf(shipdesk.EINVALID, "Unknown widget %q", widget)
	}
	if len(data) > 0 && !json.Valid(data) {
		return shipdesk.Errorf(shipdesk.EINVALID, "Widget data must be valid JSON")
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE ships SET "+column+" = ?, updated_at = ? WHERE id = ?",
		nullJSON(data), s.db.Now().Format(time.RFC3339), id)
	if err != nil {
		return err
	}
	return requireAffected(result, "Ship not found")
}

// DeleteShip permanently removes a ship.
func (s *ShipService) DeleteShip(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM ships WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(result, "Ship not found")
}

// requireAffected returns ENOTFOUND with msg when result touched no rows.
func requireAffected(result sql.Result, msg string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return shipdesk.Errorf(shipdesk.ENOTFOUND, "%s", msg)
	}
	return nil
}
