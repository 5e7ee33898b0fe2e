package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// SecureHeaders sets the standard browser hardening headers on every response.
// TLS is terminated upstream, so no redirect is attempted here.
func SecureHeaders(isProduction bool) gin.HandlerFunc {
	sm := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		STSSeconds:         stsSeconds(isProduction),
		IsDevelopment:      !isProduction,
	})

	return func(c *gin.Context) {
		if err := sm.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	}
}

func stsSeconds(isProduction bool) int64 {
	if isProduction {
		return 31536000
	}
	return 0
}
