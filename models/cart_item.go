package models

import (
	"time"

	"github.com/google/uuid"

	"bookify/utils"
)

// Hash scopes select which view of an item (or cart) feeds change detection.
// A later wizard step compares the hash captured at step entry with the
// current one to know whether its cached availability state is stale.
const (
	HashScopeAll          = "all"
	HashScopeIDs          = "ids"
	HashScopePeriod       = "period"
	HashScopeAvailability = "availability"
)

// CartItem is one prospective booking line: a service, the resources to
// perform it, a date and time, and a capacity.
type CartItem struct {
	ItemID            string            `json:"itemId"`
	Service           *Service          `json:"service,omitempty"`
	ServiceCategories map[string]string `json:"serviceCategories,omitempty"`
	Employee          *Employee         `json:"employee,omitempty"`
	Location          *Location         `json:"location,omitempty"`
	Date              time.Time         `json:"date,omitzero"`
	Time              *TimePeriod       `json:"time,omitempty"`
	Capacity          int               `json:"capacity"`

	// Resources still selectable for the chosen service, kept so dependent
	// steps can re-render options without a refetch.
	AvailableEmployees []Employee `json:"availableEmployees,omitempty"`
	AvailableLocations []Location `json:"availableLocations,omitempty"`
}

// NewCartItem creates an empty line item with a fresh id and unit capacity.
func NewCartItem() *CartItem {
	return &CartItem{
		ItemID:   uuid.New().String(),
		Capacity: 1,
	}
}

// IsSet reports completeness for the given concern: "ids" needs service,
// employee and location; "period" needs date and time; "all" needs both.
func (i *CartItem) IsSet(scope string) bool {
	idsSet := i.Service != nil && i.Employee != nil && i.Location != nil
	periodSet := !i.Date.IsZero() && i.Time != nil
	switch scope {
	case HashScopeIDs:
		return idsSet
	case HashScopePeriod:
		return periodSet
	default:
		return idsSet && periodSet
	}
}

// GetHash digests the scope-selected view of the item. Equal hashes mean a
// downstream step may keep its cached, availability-dependent state.
func (i *CartItem) GetHash(scope string) string {
	fields := make(map[string]interface{})

	addIDs := func() {
		serviceID, employeeID, locationID := 0, 0, 0
		if i.Service != nil {
			serviceID = i.Service.ID
		}
		if i.Employee != nil {
			employeeID = i.Employee.ID
		}
		if i.Location != nil {
			locationID = i.Location.ID
		}
		fields["service"] = serviceID
		fields["employee"] = employeeID
		fields["location"] = locationID
	}
	addPeriod := func() {
		if !i.Date.IsZero() {
			fields["date"] = utils.FormatDate(i.Date, utils.FormatInternal)
		} else {
			fields["date"] = ""
		}
		if i.Time != nil {
			fields["time"] = i.Time.String()
		} else {
			fields["time"] = ""
		}
	}
	addAvailability := func() {
		employees := make([]int, 0, len(i.AvailableEmployees))
		for _, e := range i.AvailableEmployees {
			employees = append(employees, e.ID)
		}
		locations := make([]int, 0, len(i.AvailableLocations))
		for _, l := range i.AvailableLocations {
			locations = append(locations, l.ID)
		}
		fields["availableEmployees"] = employees
		fields["availableLocations"] = locations
	}

	switch scope {
	case HashScopeIDs:
		addIDs()
	case HashScopePeriod:
		addPeriod()
	case HashScopeAvailability:
		addAvailability()
	default:
		addIDs()
		addPeriod()
		fields["capacity"] = i.Capacity
	}

	return utils.ContentHash(fields)
}

// DidChange reports whether the scoped view differs from a previously
// captured hash.
func (i *CartItem) DidChange(prevHash, scope string) bool {
	return i.GetHash(scope) != prevHash
}

// GetPrice delegates to the service pricing with this item's employee and
// capacity. An item without a service costs nothing.
func (i *CartItem) GetPrice() float64 {
	if i.Service == nil {
		return 0
	}
	employeeID := 0
	if i.Employee != nil {
		employeeID = i.Employee.ID
	}
	return i.Service.GetPrice(employeeID, i.Capacity)
}

// GetDeposit computes the up-front amount for this item against its
// already-discounted price. The deposit never exceeds that price.
func (i *CartItem) GetDeposit(priceAfterDiscount float64) float64 {
	if i.Service == nil {
		return 0
	}
	var deposit float64
	switch i.Service.DepositType {
	case DepositFixed:
		deposit = i.Service.DepositAmount
	case DepositPercentage:
		deposit = priceAfterDiscount * i.Service.DepositAmount / 100
	default:
		deposit = priceAfterDiscount
	}
	if deposit < 0 {
		return 0
	}
	if deposit > priceAfterDiscount {
		return priceAfterDiscount
	}
	return deposit
}
