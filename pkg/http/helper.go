package http

import (
	"net/http"
	"strconv"

	"blinktech/pkg/config"
	apperrors "blinktech/pkg/errors"
)

// ExtractPageSize parses the page/size query parameters used by list
// endpoints. Page is zero-based.
func ExtractPageSize(r *http.Request) (int64, int64, error) {
	query := r.URL.Query()

	var page int64 = 0
	if s := query.Get("page"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			return 0, 0, apperrors.InvalidInput("invalid page parameter: " + s)
		}
		page = v
	}

	var size int64 = 0
	if s := query.Get("size"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v < 0 {
			return 0, 0, apperrors.InvalidInput("invalid size parameter: " + s)
		}
		size = v
	}

	size = config.NormalizePageSize(size)

	return page, size, nil
}
