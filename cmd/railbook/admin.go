package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/Zakhar-Rapitskyi/railbook/internal/api"
	"github.com/Zakhar-Rapitskyi/railbook/internal/booking"
)

// Administrative command groups. Each takes an action as its first
// argument (list, create, delete, ...) followed by action flags. The
// backend enforces role checks; the CLI just forwards the calls.

func (a *App) runStations(ctx context.Context, args []string) error {
	action, rest := splitAction(args)
	switch action {
	case "list":
		stations, err := a.Client.ListStations(ctx)
		if err != nil {
			return err
		}
		for _, s := range stations {
			fmt.Fprintf(a.Out, "[%d] %s\n", s.ID, s.Name)
		}
		return nil
	case "search":
		fs := flag.NewFlagSet("stations search", flag.ContinueOnError)
		name := fs.String("name", "", "name prefix to search for")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		stations, err := a.Client.SearchStations(ctx, *name)
		if err != nil {
			return err
		}
		for _, s := range stations {
			fmt.Fprintf(a.Out, "[%d] %s\n", s.ID, s.Name)
		}
		return nil
	case "create":
		fs := flag.NewFlagSet("stations create", flag.ContinueOnError)
		name := fs.String("name", "", "station name")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		station, err := a.Client.CreateStation(ctx, *name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "created station [%d] %s\n", station.ID, station.Name)
		return nil
	case "rename":
		fs := flag.NewFlagSet("stations rename", flag.ContinueOnError)
		id := fs.Int64("id", 0, "station id")
		name := fs.String("name", "", "new station name")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		station, err := a.Client.UpdateStation(ctx, *id, *name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "renamed station [%d] to %s\n", station.ID, station.Name)
		return nil
	case "delete":
		fs := flag.NewFlagSet("stations delete", flag.ContinueOnError)
		id := fs.Int64("id", 0, "station id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := a.Client.DeleteStation(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "deleted station %d\n", *id)
		return nil
	default:
		return fmt.Errorf("stations: unknown action %q (list, search, create, rename, delete)", action)
	}
}

func (a *App) runTrains(ctx context.Context, args []string) error {
	action, rest := splitAction(args)
	switch action {
	case "list":
		trains, err := a.Client.ListTrains(ctx)
		if err != nil {
			return err
		}
		for _, t := range trains {
			fmt.Fprintf(a.Out, "[%d] %s (%d cars)\n", t.ID, t.Name, t.TotalCars)
		}
		return nil
	case "create":
		fs := flag.NewFlagSet("trains create", flag.ContinueOnError)
		name := fs.String("name", "", "train name")
		cars := fs.Int("cars", 0, "number of cars")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		train, err := a.Client.CreateTrain(ctx, api.TrainRequest{Name: *name, TotalCars: *cars})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "created train [%d] %s (%d cars)\n", train.ID, train.Name, train.TotalCars)
		return nil
	case "update":
		fs := flag.NewFlagSet("trains update", flag.ContinueOnError)
		id := fs.Int64("id", 0, "train id")
		name := fs.String("name", "", "train name")
		cars := fs.Int("cars", 0, "number of cars")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		train, err := a.Client.UpdateTrain(ctx, *id, api.TrainRequest{Name: *name, TotalCars: *cars})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "updated train [%d] %s (%d cars)\n", train.ID, train.Name, train.TotalCars)
		return nil
	case "delete":
		fs := flag.NewFlagSet("trains delete", flag.ContinueOnError)
		id := fs.Int64("id", 0, "train id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := a.Client.DeleteTrain(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "deleted train %d\n", *id)
		return nil
	default:
		return fmt.Errorf("trains: unknown action %q (list, create, update, delete)", action)
	}
}

func (a *App) runRoutes(ctx context.Context, args []string) error {
	action, rest := splitAction(args)
	switch action {
	case "list":
		routes, err := a.Client.ListRoutes(ctx)
		if err != nil {
			return err
		}
		for _, r := range routes {
			fmt.Fprintf(a.Out, "[%d] %s (%d stations)\n", r.ID, r.Name, len(r.Stations))
		}
		return nil
	case "show":
		fs := flag.NewFlagSet("routes show", flag.ContinueOnError)
		id := fs.Int64("id", 0, "route id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		route, err := a.Client.GetRoute(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "[%d] %s\n", route.ID, route.Name)
		for _, stop := range booking.NewStopSequence(route.Stations).Stops() {
			fmt.Fprintf(a.Out, "  %2d. %s\n", stop.Order, stop.Name)
		}
		return nil
	case "create":
		fs := flag.NewFlagSet("routes create", flag.ContinueOnError)
		name := fs.String("name", "", "route name")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		route, err := a.Client.CreateRoute(ctx, *name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "created route [%d] %s\n", route.ID, route.Name)
		return nil
	case "rename":
		fs := flag.NewFlagSet("routes rename", flag.ContinueOnError)
		id := fs.Int64("id", 0, "route id")
		name := fs.String("name", "", "new route name")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		route, err := a.Client.UpdateRoute(ctx, *id, *name)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "renamed route [%d] to %s\n", route.ID, route.Name)
		return nil
	case "delete":
		fs := flag.NewFlagSet("routes delete", flag.ContinueOnError)
		id := fs.Int64("id", 0, "route id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := a.Client.DeleteRoute(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "deleted route %d\n", *id)
		return nil
	case "add-station":
		fs := flag.NewFlagSet("routes add-station", flag.ContinueOnError)
		routeID := fs.Int64("route", 0, "route id")
		stationID := fs.Int64("station", 0, "station id")
		order := fs.Int("order", 0, "position within the route")
		distance := fs.Float64("distance", 0, "distance from the first station, km")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		rs, err := a.Client.AddStationToRoute(ctx, *routeID, *stationID, api.RouteStationRequest{
			StationOrder:      *order,
			DistanceFromStart: *distance,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "added %s to route %d at position %d\n", rs.Station.Name, *routeID, rs.StationOrder)
		return nil
	case "remove-station":
		fs := flag.NewFlagSet("routes remove-station", flag.ContinueOnError)
		routeID := fs.Int64("route", 0, "route id")
		stationID := fs.Int64("station", 0, "station id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := a.Client.RemoveStationFromRoute(ctx, *routeID, *stationID); err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "removed station %d from route %d\n", *stationID, *routeID)
		return nil
	default:
		return fmt.Errorf("routes: unknown action %q (list, show, create, rename, delete, add-station, remove-station)", action)
	}
}

func (a *App) runSchedules(ctx context.Context, args []string) error {
	action, rest := splitAction(args)
	switch action {
	case "list":
		schedules, err := a.Client.ListSchedules(ctx)
		if err != nil {
			return err
		}
		for _, s := range schedules {
			fmt.Fprintf(a.Out, "[%d] %s on %s, %s\n", s.ID, s.Route.Name, s.DepartureDate, s.Train.Name)
		}
		return nil
	case "create":
		fs := flag.NewFlagSet("schedules create", flag.ContinueOnError)
		trainID := fs.Int64("train", 0, "train id")
		routeID := fs.Int64("route", 0, "route id")
		date := fs.String("date", "", "departure date (YYYY-MM-DD)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		departureDate, err := parseDate(*date)
		if err != nil {
			return err
		}
		schedule, err := a.Client.CreateSchedule(ctx, *trainID, *routeID, departureDate)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "created schedule [%d] %s on %s\n", schedule.ID, schedule.Route.Name, schedule.DepartureDate)
		return nil
	case "set-time":
		fs := flag.NewFlagSet("schedules set-time", flag.ContinueOnError)
		scheduleID := fs.Int64("schedule", 0, "schedule id")
		routeStationID := fs.Int64("route-station", 0, "route station id")
		arrival := fs.String("time", "", "arrival time (HH:MM:SS)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		ss, err := a.Client.SetScheduleStationTime(ctx, *scheduleID, *routeStationID, *arrival)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "schedule %d: route station %d arrives at %s\n", *scheduleID, ss.RouteStationID, ss.ArrivalTime)
		return nil
	case "set-train":
		fs := flag.NewFlagSet("schedules set-train", flag.ContinueOnError)
		scheduleID := fs.Int64("schedule", 0, "schedule id")
		trainID := fs.Int64("train", 0, "train id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		schedule, err := a.Client.UpdateScheduleTrain(ctx, *scheduleID, *trainID)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "schedule %d now runs with %s\n", schedule.ID, schedule.Train.Name)
		return nil
	case "delete":
		fs := flag.NewFlagSet("schedules delete", flag.ContinueOnError)
		id := fs.Int64("id", 0, "schedule id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if err := a.Client.DeleteSchedule(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintf(a.Out, "deleted schedule %d\n", *id)
		return nil
	default:
		return fmt.Errorf("schedules: unknown action %q (list, create, set-time, set-train, delete)", action)
	}
}

func splitAction(args []string) (string, []string) {
	if len(args) == 0 {
		return "list", nil
	}
	return args[0], args[1:]
}
