package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// customerIDKey is the key used to store the authenticated customer's ID.
const customerIDKey = contextKey("customerID")

// GetCustomerIDFromContext retrieves the authenticated customer ID from the
// request context. It returns the ID and a boolean indicating presence.
func GetCustomerIDFromContext(c *gin.Context) (int64, bool) {
	v := c.Request.Context().Value(customerIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// parseCustomerSubject converts a JWT subject claim into a customer ID.
func parseCustomerSubject(sub string) (int64, bool) {
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
