package array

import (
	"context"
	"errors"
	"fmt"

	"github.com/raidrisk/raidrisk/device"
	"github.com/raidrisk/raidrisk/risk"
)

// Resolve asks q for the devices behind members. When the platform does not
// support kind it returns an empty list together with an error matching
// device.ErrUnsupported.
func Resolve(ctx context.Context, q device.Querier, members []device.Member, kind device.Kind) (*device.List, error) {
	list, err := q.Query(ctx, members, kind)
	if errors.Is(err, device.ErrUnsupported) {
		return &device.List{}, err
	}
	if err != nil {
		return nil, fmt.Errorf("query %s devices: %w", kind, err)
	}
	if list == nil {
		list = &device.List{}
	}
	return list, nil
}

// FailureRate sums the annual failure rate of every member backed by a
// device. A device hosting two members counts twice: each member is a
// separate failure domain of the array.
func FailureRate(list *device.List) float64 {
	rate := 0.0
	for _, i := range list.Logical() {
		rate += risk.DeviceAnnualFailureRate(list.At(i).Smart)
	}
	return rate
}
