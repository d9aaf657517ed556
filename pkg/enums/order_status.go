package enums

// OrderStatus is the fulfillment state recorded on an order. The status-update
// endpoint accepts arbitrary strings and enforces no transition graph; these
// constants only name the values the platform itself writes.
type OrderStatus = string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPacked    OrderStatus = "packed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)
