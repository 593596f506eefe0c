package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseAllFlag reads the "all" query parameter. Integers are truthy when
// non-zero; boolean literals are accepted as well. A missing parameter is
// false.
func ParseAllFlag(c *gin.Context) (bool, error) {
	raw := strings.TrimSpace(c.Query("all"))
	if raw == "" {
		return false, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n != 0, nil
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b, nil
	}
	return false, fmt.Errorf("invalid value %q for all", raw)
}

// ParseID parses a positive numeric path parameter.
func ParseID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}
