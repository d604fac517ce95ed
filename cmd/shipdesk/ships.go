package main

import (
	"fmt"

	"github.com/harborline/shipdesk"
)

// Run executes the ships command.
func (c *ShipsCmd) Run(deps *Dependencies) error {
	filter := shipdesk.ShipFilter{}
	if c.Status != "" {
		if _, err := shipdesk.StatusUpdate(c.Status); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", shipdesk.ErrorMessage(err))
			return err
		}
		filter.Status = &c.Status
	}

	ships, err := deps.Ships.FindShips(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shipdesk.ErrorMessage(err))
		return err
	}

	if len(ships) == 0 {
		fmt.Fprintln(deps.Stdout, "No ship operations found. Use 'shipdesk extract --create' or the API to add one.")
		return nil
	}

	for _, s := range ships {
		fmt.Fprintf(deps.Stdout, "%d  %s  %s  %s  %s  %d%%\n", s.ID, s.VesselName, s.OperationDate, s.Berth, s.Status, s.Progress)
	}

	return nil
}
