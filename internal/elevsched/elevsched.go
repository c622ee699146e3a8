// Package elevsched decides which floor the cabin should head for next.
//
// The rule is a SCAN sweep: keep travelling in the last direction while
// there is work that way, then reverse. A request at the current floor
// always wins, and with no requests the cabin stays where it is.
package elevsched

import (
	"github.com/detoxte/TTK4235/internal/elevconsts"
	"github.com/detoxte/TTK4235/internal/elevorders"
)

// NextTarget returns the floor to serve next and the direction to move
// toward it. It returns (lastFloor, Stop) when nothing is pending or when
// lastFloor itself has a request.
func NextTarget(orders *elevorders.Orders, lastFloor int, lastDirn elevconsts.Dirn) (int, elevconsts.Dirn) {
	if orders.Empty() {
		return lastFloor, elevconsts.Stop
	}
	if orders.AnyAt(lastFloor) {
		return lastFloor, elevconsts.Stop
	}

	switch lastDirn {
	case elevconsts.Down:
		if target, ok := nearestBelow(orders, lastFloor); ok {
			return target, elevconsts.Down
		}
		if target, ok := nearestAbove(orders, lastFloor); ok {
			return target, elevconsts.Up
		}
	default:
		if target, ok := nearestAbove(orders, lastFloor); ok {
			return target, elevconsts.Up
		}
		if target, ok := nearestBelow(orders, lastFloor); ok {
			return target, elevconsts.Down
		}
	}
	return lastFloor, elevconsts.Stop
}

// nearestAbove finds the closest floor above floor with a cab or hall-up
// call, or else the topmost pending request if that lies above.
func nearestAbove(orders *elevorders.Orders, floor int) (int, bool) {
	for f := floor + 1; f < elevconsts.N_FLOORS; f++ {
		if f >= 0 && (orders.Cab[f] || orders.Up[f]) {
			return f, true
		}
	}
	if top := orders.Topmost(); top > floor {
		return top, true
	}
	return floor, false
}

func nearestBelow(orders *elevorders.Orders, floor int) (int, bool) {
	for f := floor - 1; f >= 0; f-- {
		if f < elevconsts.N_FLOORS && (orders.Cab[f] || orders.Down[f]) {
			return f, true
		}
	}
	if bottom := orders.Bottommost(); bottom != elevconsts.FLOOR_BETWEEN && bottom < floor {
		return bottom, true
	}
	return floor, false
}

// PlannedStops lists the floors the cabin will open its door at, in order,
// if no new requests arrive. Each stop clears every request at that floor.
func PlannedStops(orders *elevorders.Orders, lastFloor int, lastDirn elevconsts.Dirn) []int {
	remaining := orders.Snapshot()
	floor, dirn := lastFloor, lastDirn
	stops := []int{}

	for !remaining.Empty() {
		target, next := NextTarget(&remaining, floor, dirn)
		if !remaining.AnyAt(target) {
			break
		}
		stops = append(stops, target)
		remaining.ClearAt(target)
		if next != elevconsts.Stop {
			dirn = next
		}
		floor = target
	}
	return stops
}
