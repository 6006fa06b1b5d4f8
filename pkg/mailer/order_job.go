package mailer

// OrderItemLine is one line of an order confirmation email.
type OrderItemLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// OrderJob is the JSON payload put on the RabbitMQ order queue after an order
// commits. The order worker consumes it and sends the confirmation email.
type OrderJob struct {
	OrderID     string          `json:"order_id"`
	UserID      string          `json:"user_id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	TotalAmount string          `json:"total_amount"`
	Items       []OrderItemLine `json:"items"`
}
