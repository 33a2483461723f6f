package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS builds the CORS policy for the API. PATCH is listed because the
// snapshot update endpoints use it; X-Tenant-ID is the tenant header read
// by the tenant middleware in remote mode.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-Tenant-ID",
		},
		ExposedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
