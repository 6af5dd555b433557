package drone

import (
	"context"

	"github.com/emergent-company/dronemcp/internal/errs"
	"github.com/emergent-company/dronemcp/internal/guards"
)

// preconditionGuards is the fixed set of guards run before every
// dispatch. Order doesn't affect the outcome (Runner aggregates all of
// them), but it matches the order the checks are described in.
func preconditionGuards() []guards.Guard {
	return []guards.Guard{
		guards.NewGuardFunc("drone_known", checkDroneKnown),
		guards.NewGuardFunc("not_disconnected", checkNotDisconnected),
		guards.NewGuardFunc("not_error_state", checkNotErrorState),
		guards.NewGuardFunc("battery_for_takeoff", checkBatteryForTakeoff),
		guards.NewGuardFunc("in_flight_required", checkInFlightRequired),
		guards.NewGuardFunc("not_already_connected", checkNotAlreadyConnected),
		guards.NewGuardFunc("dangerous_confirmed", checkDangerousConfirmed),
	}
}

func checkDroneKnown(_ context.Context, g *guards.GuardContext) guards.Result {
	if g.StatusFetchFailed || g.StatusKnown || g.Action == "connect" {
		return guards.Pass("drone_known")
	}
	return guards.Fail("drone_known", guards.HardBlock,
		string(errs.CodeDroneNotFound), "scan_drones, then connect_drone with a discovered id")
}

func checkNotDisconnected(_ context.Context, g *guards.GuardContext) guards.Result {
	if g.StatusFetchFailed || g.Action == "connect" || !g.StatusKnown {
		return guards.Pass("not_disconnected")
	}
	if g.ConnectionStatus == "disconnected" {
		return guards.Fail("not_disconnected", guards.HardBlock,
			string(errs.CodeDroneDisconnected), "connect_drone before issuing other commands")
	}
	return guards.Pass("not_disconnected")
}

func checkNotErrorState(_ context.Context, g *guards.GuardContext) guards.Result {
	if g.StatusFetchFailed || !g.StatusKnown {
		return guards.Pass("not_error_state")
	}
	if g.ConnectionStatus == "error" {
		return guards.Fail("not_error_state", guards.HardBlock,
			string(errs.CodeDroneErrorState), "resolve the drone's error state before dispatching commands")
	}
	return guards.Pass("not_error_state")
}

func checkBatteryForTakeoff(_ context.Context, g *guards.GuardContext) guards.Result {
	if g.StatusFetchFailed || g.Action != "takeoff" || !g.StatusKnown {
		return guards.Pass("battery_for_takeoff")
	}
	if g.BatteryLevel < 15 {
		return guards.Fail("battery_for_takeoff", guards.HardBlock,
			string(errs.CodeLowBattery), "charge the battery above 15% before takeoff")
	}
	return guards.Pass("battery_for_takeoff")
}

func checkInFlightRequired(_ context.Context, g *guards.GuardContext) guards.Result {
	if g.StatusFetchFailed || !g.RequiresInFlight || !g.StatusKnown {
		return guards.Pass("in_flight_required")
	}
	if g.FlightStatus == "landed" {
		return guards.Fail("in_flight_required", guards.HardBlock,
			string(errs.CodeDroneNotReady), "takeoff before issuing in-flight commands")
	}
	return guards.Pass("in_flight_required")
}

func checkNotAlreadyConnected(_ context.Context, g *guards.GuardContext) guards.Result {
	if g.StatusFetchFailed || g.Action != "connect" || !g.StatusKnown {
		return guards.Pass("not_already_connected")
	}
	if g.ConnectionStatus == "connected" {
		return guards.Fail("not_already_connected", guards.HardBlock,
			string(errs.CodeDroneAlreadyConnected), "no action needed, the drone is already connected")
	}
	return guards.Pass("not_already_connected")
}

func checkDangerousConfirmed(_ context.Context, g *guards.GuardContext) guards.Result {
	if !g.IsDangerous {
		return guards.Pass("dangerous_confirmed")
	}
	if g.Force {
		return guards.Pass("dangerous_confirmed")
	}
	return guards.Fail("dangerous_confirmed", guards.SoftBlock,
		string(errs.CodeDangerousCommandConfirmationNeeded), "resend the command with confirm_before_execution=true")
}

// inFlightActions is the set of actions that assume the drone is
// already airborne.
var inFlightActions = map[string]bool{
	"move":       true,
	"rotate":     true,
	"altitude":   true,
	"land":       true,
	"take_photo": true,
}

// dangerousActions is the set of actions that require explicit
// confirmation before dispatch.
var dangerousActions = map[string]bool{
	"emergency_stop": true,
	"land_immediate": true,
	"reset":          true,
}
