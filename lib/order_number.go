package lib

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOrderNumber generates an order number in the format ORDXXXXXXYYY:
// six digits derived from the current time followed by three random digits.
// Uniqueness is probabilistic; the orders table enforces it with a unique
// constraint.
func GenerateOrderNumber() string {
	timePart := time.Now().UnixMilli() % 1_000_000
	randomPart := rand.Intn(1000)
	return fmt.Sprintf("ORD%06d%03d", timePart, randomPart)
}

// Token returns the pickup token shown to both vendor and customer: the last
// six characters of the order number. This is a display convention, not a
// separate identifier.
func Token(orderNumber string) string {
	if len(orderNumber) < 6 {
		return orderNumber
	}
	return orderNumber[len(orderNumber)-6:]
}
