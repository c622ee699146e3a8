package elevsched

import (
	"reflect"
	"testing"

	"github.com/detoxte/TTK4235/internal/elevconsts"
	"github.com/detoxte/TTK4235/internal/elevorders"
	"github.com/detoxte/TTK4235/internal/logger"
	"github.com/rs/zerolog"
)

type request struct {
	floor  int
	button elevconsts.Button
}

func ordersWith(requests ...request) *elevorders.Orders {
	orders := elevorders.NewOrders()
	for _, req := range requests {
		orders.Add(req.floor, req.button)
	}
	return orders
}

func TestNextTarget(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)

	tests := []struct {
		name       string
		requests   []request
		lastFloor  int
		lastDirn   elevconsts.Dirn
		wantTarget int
		wantDirn   elevconsts.Dirn
	}{
		{"empty", nil, 2, elevconsts.Up, 2, elevconsts.Stop},
		{"request here", []request{{1, elevconsts.HallDown}, {3, elevconsts.Cab}}, 1, elevconsts.Up, 1, elevconsts.Stop},
		{"cab above from stop", []request{{2, elevconsts.Cab}}, 0, elevconsts.Stop, 2, elevconsts.Up},
		{"cab below from stop", []request{{0, elevconsts.Cab}}, 2, elevconsts.Stop, 0, elevconsts.Down},
		{"nearest cab above", []request{{2, elevconsts.Cab}, {3, elevconsts.Cab}}, 0, elevconsts.Up, 2, elevconsts.Up},
		{"skip hall down going up", []request{{2, elevconsts.HallDown}, {3, elevconsts.Cab}}, 0, elevconsts.Up, 3, elevconsts.Up},
		{"topmost hall down going up", []request{{1, elevconsts.HallDown}, {2, elevconsts.HallDown}}, 0, elevconsts.Up, 2, elevconsts.Up},
		{"hall up above", []request{{1, elevconsts.HallUp}, {3, elevconsts.Cab}}, 0, elevconsts.Up, 1, elevconsts.Up},
		{"reverse when nothing above", []request{{0, elevconsts.Cab}}, 2, elevconsts.Up, 0, elevconsts.Down},
		{"nearest cab below", []request{{0, elevconsts.Cab}, {1, elevconsts.Cab}}, 3, elevconsts.Down, 1, elevconsts.Down},
		{"skip hall up going down", []request{{2, elevconsts.HallUp}, {0, elevconsts.Cab}}, 3, elevconsts.Down, 0, elevconsts.Down},
		{"bottommost hall up going down", []request{{1, elevconsts.HallUp}, {2, elevconsts.HallUp}}, 3, elevconsts.Down, 1, elevconsts.Down},
		{"reverse going down", []request{{3, elevconsts.Cab}}, 1, elevconsts.Down, 3, elevconsts.Up},
		{"keep sweeping down", []request{{0, elevconsts.HallUp}, {3, elevconsts.HallDown}}, 2, elevconsts.Down, 0, elevconsts.Down},
	}

	for _, test := range tests {
		orders := ordersWith(test.requests...)
		target, dirn := NextTarget(orders, test.lastFloor, test.lastDirn)
		if target != test.wantTarget || dirn != test.wantDirn {
			t.Errorf("%s: NextTarget() = (%d, %v), expected (%d, %v)", test.name, target, dirn, test.wantTarget, test.wantDirn)
		}
	}
}

func TestScanPreferenceOnEqualDistance(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	orders := ordersWith(request{0, elevconsts.Cab}, request{2, elevconsts.Cab})

	if target, dirn := NextTarget(orders, 1, elevconsts.Up); target != 2 || dirn != elevconsts.Up {
		t.Errorf("going up: NextTarget() = (%d, %v), expected (2, Up)", target, dirn)
	}
	if target, dirn := NextTarget(orders, 1, elevconsts.Down); target != 0 || dirn != elevconsts.Down {
		t.Errorf("going down: NextTarget() = (%d, %v), expected (0, Down)", target, dirn)
	}
	if target, dirn := NextTarget(orders, 1, elevconsts.Stop); target != 2 || dirn != elevconsts.Up {
		t.Errorf("stopped: NextTarget() = (%d, %v), expected (2, Up)", target, dirn)
	}
}

// Every pending request is reachable: the target is always a floor with a
// request, and the direction points at it.
func TestNextTargetAlwaysPointsAtWork(t *testing.T) {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
	dirns := []elevconsts.Dirn{elevconsts.Up, elevconsts.Down, elevconsts.Stop}

	for mask := 1; mask < 1<<(elevconsts.N_FLOORS*elevconsts.N_BUTTONS); mask++ {
		orders := elevorders.NewOrders()
		for bit := 0; bit < elevconsts.N_FLOORS*elevconsts.N_BUTTONS; bit++ {
			if mask&(1<<bit) != 0 {
				orders.Add(bit/elevconsts.N_BUTTONS, elevconsts.Button(bit%elevconsts.N_BUTTONS))
			}
		}
		if orders.Empty() {
			continue
		}
		for floor := 0; floor < elevconsts.N_FLOORS; floor++ {
			for _, lastDirn := range dirns {
				target, dirn := NextTarget(orders, floor, lastDirn)
				if !orders.AnyAt(target) {
					t.Fatalf("NextTarget(%d, %v) = %d which has no request\n%v", floor, lastDirn, target, orders.String())
				}
				switch {
				case target > floor && dirn != elevconsts.Up,
					target < floor && dirn != elevconsts.Down,
					target == floor && dirn != elevconsts.Stop:
					t.Fatalf("NextTarget(%d, %v) = (%d, %v), direction does not point at target", floor, lastDirn, target, dirn)
				}
			}
		}
	}
}

func TestPlannedStops(t *testing.T) {
	tests := []struct {
		name     string
		calls    []request
		floor    int
		dirn     elevconsts.Dirn
		expected []int
	}{
		{"empty", nil, 2, elevconsts.Up, []int{}},
		{"sweep then reverse", []request{{3, elevconsts.Cab}, {2, elevconsts.HallDown}, {0, elevconsts.Cab}}, 1, elevconsts.Up, []int{3, 2, 0}},
		{"going down first", []request{{3, elevconsts.Cab}, {0, elevconsts.HallUp}}, 2, elevconsts.Down, []int{0, 3}},
		{"here first", []request{{1, elevconsts.HallUp}, {2, elevconsts.Cab}}, 1, elevconsts.Stop, []int{1, 2}},
		{"one stop per floor", []request{{2, elevconsts.Cab}, {2, elevconsts.HallUp}, {2, elevconsts.HallDown}}, 0, elevconsts.Stop, []int{2}},
	}

	for _, test := range tests {
		orders := elevorders.NewOrders()
		for _, call := range test.calls {
			orders.Add(call.floor, call.button)
		}
		stops := PlannedStops(orders, test.floor, test.dirn)
		if !reflect.DeepEqual(stops, test.expected) {
			t.Errorf("%s: PlannedStops() = %v, expected %v", test.name, stops, test.expected)
		}
		if orders.Empty() != (len(test.calls) == 0) {
			t.Errorf("%s: PlannedStops() modified the orders", test.name)
		}
	}
}
