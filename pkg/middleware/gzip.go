package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// Gzip comprime respostas quando o cliente envia Accept-Encoding: gzip
func Gzip() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return gzhttp.GzipHandler(next)
	}
}
