package elevfsm

import (
	"github.com/detoxte/TTK4235/internal/elevconsts"
	"github.com/detoxte/TTK4235/internal/elevorders"
)

// Guards is a snapshot of the predicates a transition may depend on. It is
// computed fresh on every Step.
type Guards struct {
	AtFloor       bool
	TimerDone     bool
	TargetAbove   bool
	TargetEqual   bool
	TargetBelow   bool
	DirMatch      bool
	RequestsAhead bool
	QueueEmpty    bool
}

// targetRelation places target relative to the cabin. With a live floor
// reading the sensor is used. Between floors the cabin is just past
// lastFloor in the direction it last travelled.
func targetRelation(target, lastFloor, sensorFloor int, lastDirn elevconsts.Dirn) (above, equal, below bool) {
	if elevconsts.ValidFloor(sensorFloor) {
		return target > sensorFloor, target == sensorFloor, target < sensorFloor
	}
	switch {
	case target > lastFloor:
		return true, false, false
	case target < lastFloor:
		return false, false, true
	case lastDirn == elevconsts.Down:
		return true, false, false
	default:
		return false, false, true
	}
}

// dirMatch reports whether floor has a request the cabin should stop for
// while travelling in dirn: a cab call, a hall call in the same direction,
// or an opposite hall call when nothing lies further ahead.
func dirMatch(orders *elevorders.Orders, floor int, dirn elevconsts.Dirn) bool {
	if !elevconsts.ValidFloor(floor) {
		return false
	}
	if orders.Cab[floor] {
		return true
	}
	switch dirn {
	case elevconsts.Up:
		return orders.Up[floor] || (orders.Down[floor] && !orders.AnyAbove(floor))
	case elevconsts.Down:
		return orders.Down[floor] || (orders.Up[floor] && !orders.AnyBelow(floor))
	default:
		return orders.AnyAt(floor)
	}
}

func requestsAhead(orders *elevorders.Orders, floor int, dirn elevconsts.Dirn) bool {
	switch dirn {
	case elevconsts.Up:
		return orders.AnyAbove(floor)
	case elevconsts.Down:
		return orders.AnyBelow(floor)
	default:
		return false
	}
}
