package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// EncodeIDToken creates an opaque cursor from the last id returned on a page.
func EncodeIDToken(id int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// DecodeIDToken parses a cursor produced by EncodeIDToken.
func DecodeIDToken(token string) (int64, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	id, err := strconv.ParseInt(string(decoded), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid pagination token format (id)")
	}
	return id, nil
}
