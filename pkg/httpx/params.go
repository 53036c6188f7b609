package httpx

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	// ErrBadID - параметр пути не является положительным целым.
	ErrBadID = errors.New("id must be a positive integer")
	// ErrEmptyQuery - обязательный query-параметр пуст.
	ErrEmptyQuery = errors.New("query parameter is required")
)

// ParseID - положительный int64 из параметра пути name.
func ParseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrBadID
	}
	return id, nil
}

// RequiredQuery - непустое (после TrimSpace) значение query-параметра.
// Возвращается исходная строка без обрезки: пробелы внутри термина значимы.
func RequiredQuery(c *gin.Context, name string) (string, error) {
	v := c.Query(name)
	if strings.TrimSpace(v) == "" {
		return "", ErrEmptyQuery
	}
	return v, nil
}
