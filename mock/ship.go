package mock

import (
	"context"
	"encoding/json"

	"github.com/harborline/shipdesk"
)

var _ shipdesk.ShipService = (*ShipService)(nil)

// ShipService is a mock implementation of shipdesk.ShipService.
type ShipService struct {
	CreateShipFn    func(ctx context.Context, ship *shipdesk.Ship) error
	FindShipByIDFn  func(ctx context.Context, id int) (*shipdesk.Ship, error)
	FindShipsFn     func(ctx context.Context, filter shipdesk.ShipFilter) ([]*shipdesk.Ship, error)
	CountShipsFn    func(ctx context.Context) (int, error)
	UpdateShipFn    func(ctx context.Context, id int, upd shipdesk.ShipUpdate) (*shipdesk.Ship, error)
	SetShipWidgetFn func(ctx context.Context, id int, widget shipdesk.Widget, data json.RawMessage) error
	DeleteShipFn    func(ctx context.Context, id int) error
}

func (s *ShipService) CreateShip(ctx context.Context, ship *shipdesk.Ship) error {
	return s.CreateShipFn(ctx, ship)
}

func (s *ShipService) FindShipByID(ctx context.Context, id int) (*shipdesk.Ship, error) {
	return s.FindShipByIDFn(ctx, id)
}

func (s *ShipService) FindShips(ctx context.Context, filter shipdesk.ShipFilter) ([]*shipdesk.Ship, error) {
	return s.FindShipsFn(ctx, filter)
}

func (s *ShipService) CountShips(ctx context.Context) (int, error) {
	return s.CountShipsFn(ctx)
}

func (s *ShipService) UpdateShip(ctx context.Context, id int, upd shipdesk.ShipUpdate) (*shipdesk.Ship, error) {
	return s.UpdateShipFn(ctx, id, upd)
}

func (s *ShipService) SetShipWidget(ctx context.Context, id int, widget shipdesk.Widget, data json.RawMessage) error {
	return s.SetShipWidgetFn(ctx, id, widget, data)
}

func (s *ShipService) DeleteShip(ctx context.Context, id int) error {
	return s.DeleteShipFn(ctx, id)
}
