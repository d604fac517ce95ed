package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/harborline/shipdesk"
)

// widgetRoutes describes the PUT endpoints that replace a dashboard payload.
var widgetRoutes = []struct {
	widget  shipdesk.Widget
	missing string
	done    string
}{
	{shipdesk.WidgetDecks, "Decks data required", "Deck data updated successfully"},
	{shipdesk.WidgetTurnaround, "Turnaround data required", "Turnaround data updated successfully"},
	{shipdesk.WidgetInventory, "Inventory data required", "Inventory data updated successfully"},
	{shipdesk.WidgetHourly, "Hourly data required", "Hourly data updated successfully"},
}

func (s *Server) registerShipRoutes(r chi.Router) {
	r.Route("/api/ships", func(r chi.Router) {
		r.Get("/", s.handleShipIndex)
		r.Post("/", s.handleShipCreate)
		r.Get("/berths", s.handleBerths)
		r.Get("/stats", s.handleStats)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleShipView)
			r.Put("/", s.handleShipUpdate)
			r.Delete("/", s.handleShipDelete)
			r.Put("/progress", s.handleShipProgress)
			r.Put("/status", s.handleShipStatus)
			for _, route := range widgetRoutes {
				r.Put("/"+string(route.widget), s.handleShipWidget(route.widget, route.missing, route.done))
			}
		})
	})

	r.Get("/api/analytics", s.handleAnalytics)
}

func (s *Server) handleShipIndex(w http.ResponseWriter, r *http.Request) {
	ships, err := s.ShipService.FindShips(r.Context(), shipdesk.ShipFilter{})
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ships)
}

func (s *Server) handleShipCreate(w http.ResponseWriter, r *http.Request) {
	var in shipdesk.ShipInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.Error(w, r, shipdesk.Errorf(shipdesk.EINVALID, "No data provided"))
		return
	}

	ship, err := shipdesk.NewShip(in, s.Now())
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if err := s.ShipService.CreateShip(r.Context(), ship); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"id": ship.ID})
}

func (s *Server) handleShipView(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Ship")
	if err != nil {
		s.Error(w, r, err)
		return
	}
	ship, err := s.ShipService.FindShipByID(r.Context(), id)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ship)
}

func (s *Server) handleShipUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Ship")
	if err != nil {
		s.Error(w, r, err)
		return
	}
	body, err := decodeObject(r, "No data provided")
	if err != nil {
		s.Error(w, r, err)
		return
	}

	// Round trip the members so unknown keys are ignored and known ones
	// are type checked.
	raw, _ := json.Marshal(body)
	var upd shipdesk.ShipUpdate
	if err := json.Unmarshal(raw, &upd); err != nil {
		s.Error(w, r, shipdesk.Errorf(shipdesk.EINVALID, "Invalid ship data"))
		return
	}

	if _, err := s.ShipService.UpdateShip(r.Context(), id, upd); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Ship updated successfully"})
}

func (s *Server) handleShipProgress(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Ship")
	if err != nil {
		s.Error(w, r, err)
		return
	}
	body, err := decodeObject(r, "Progress value required")
	if err != nil {
		s.Error(w, r, err)
		return
	}
	value, ok := body["progress"]
	if !ok {
		s.Error(w, r, shipdesk.Errorf(shipdesk.EINVALID, "Progress value required"))
		return
	}

	var progress float64
	if err := json.Unmarshal(value, &progress); err != nil || string(value) == "null" {
		s.Error(w, r, shipdesk.Errorf(shipdesk.EINVALID, "Progress must be a number between 0 and 100"))
		return
	}
	upd, err := shipdesk.ProgressUpdate(progress)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	if _, err := s.ShipService.UpdateShip(r.Context(), id, upd); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Progress updated successfully"})
}

func (s *Server) handleShipStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Ship")
	if err != nil {
		s.Error(w, r, err)
		return
	}
	body, err := decodeObject(r, "Status value required")
	if err != nil {
		s.Error(w, r, err)
		return
	}
	value, ok := body["status"]
	if !ok {
		s.Error(w, r, shipdesk.Errorf(shipdesk.EINVALID, "Status value required"))
		return
	}

	var status string
	_ = json.Unmarshal(value, &status)
	upd, err := shipdesk.StatusUpdate(status)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	if _, err := s.ShipService.UpdateShip(r.Context(), id, upd); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Status updated successfully"})
}

func (s *Server) handleShipWidget(widget shipdesk.Widget, missing, done string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "id", "Ship")
		if err != nil {
			s.Error(w, r, err)
			return
		}
		body, err := decodeObject(r, missing)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		data, ok := body[string(widget)]
		if !ok {
			s.Error(w, r, shipdesk.Errorf(shipdesk.EINVALID, "%s", missing))
			return
		}

		if err := s.ShipService.SetShipWidget(r.Context(), id, widget, data); err != nil {
			s.Error(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: done})
	}
}

func (s *Server) handleShipDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id", "Ship")
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if err := s.ShipService.DeleteShip(r.Context(), id); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Ship operation deleted successfully"})
}

// unfinishedShips returns every ship that is not complete.
func (s *Server) unfinishedShips(r *http.Request) ([]*shipdesk.Ship, error) {
	complete := shipdesk.StatusComplete
	return s.ShipService.FindShips(r.Context(), shipdesk.ShipFilter{ExcludeStatus: &complete})
}

func (s *Server) handleBerths(w http.ResponseWriter, r *http.Request) {
	ships, err := s.unfinishedShips(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shipdesk.BerthOccupancy(ships))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ships, err := s.unfinishedShips(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	total, err := s.ShipService.CountShips(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shipdesk.ComputeStats(ships, total))
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	period := shipdesk.DefaultAnalyticsPeriod
	if v := r.URL.Query().Get("period"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.Error(w, r, shipdesk.Errorf(shipdesk.EINVALID, "Period must be a positive number of days"))
			return
		}
		period = n
	}

	now := s.Now()
	from, to := shipdesk.AnalyticsWindow(period, now)
	ships, err := s.ShipService.FindShips(r.Context(), shipdesk.ShipFilter{
		OperationDateFrom: &from,
		OperationDateTo:   &to,
	})
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shipdesk.ComputeAnalytics(ships, period, now))
}
