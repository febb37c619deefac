package amqp

import (
	"encoding/json"
	"time"
)

// TransferCompletedMessage notifies downstream consumers that a transfer
// settled. Amount travels as its decimal string representation so no
// precision is lost in transit.
type TransferCompletedMessage struct {
	TransactionID string    `json:"transactionId"`
	FromAccountID string    `json:"fromAccountId"`
	ToAccountID   string    `json:"toAccountId"`
	Amount        string    `json:"amount"`
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"createdAt"`
	Timestamp     time.Time `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes
func (m *TransferCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransferCompletedMessageFromJSON creates a message from JSON bytes
func TransferCompletedMessageFromJSON(data []byte) (*TransferCompletedMessage, error) {
	var msg TransferCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
