package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/teabook/teabook-api/internal/presentation/http/dto/response"
	"github.com/teabook/teabook-api/pkg/period"
)

// ParseIDParam parses the :id path parameter as a UUID, responding with a
// 400 on failure. The bool reports whether parsing succeeded.
func ParseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// ParsePeriodQuery parses the period query parameter, responding with a 400
// on an unknown value. The bool reports whether parsing succeeded.
func ParsePeriodQuery(c *gin.Context) (period.Period, bool) {
	p, err := period.Parse(c.Query("period"))
	if err != nil {
		response.BadRequest(c, "Period must be today, week, month or overall")
		return "", false
	}
	return p, true
}
