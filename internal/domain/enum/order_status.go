package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every status an order can be moved to
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses
func (s OrderStatus) IsValid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseOrderStatus parses a case-insensitive status name
func ParseOrderStatus(value string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(value)))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown order status %q", value)
	}
	return s, nil
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = OrderStatus(strings.ToLower(str))
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = OrderStatus(v)
	case []byte:
		*s = OrderStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", value)
	}
	return nil
}
