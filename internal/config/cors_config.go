package config

import (
	"sort"
	"strings"
)

type Cors struct{}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

// List returns the origins sorted, the form go-chi/cors expects
func (a AllowedOrigins) List() []string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	sort.Strings(origins)
	return origins
}

func (a AllowedOrigins) String() string {
	return strings.Join(a.List(), ", ")
}

func (Cors) GetAllowedOrigins() AllowedOrigins {
	origins := AllowedOrigins{}
	for _, origin := range strings.Split(GetEnv("ALLOWED_ORIGINS", "http://localhost:8080"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins[origin] = nullValue{}
		}
	}
	return origins
}

func (Cors) GetAllowedMethods() []string {
	return []string{"GET", "POST", "PUT", "PATCH", "DELETE"}
}

func (Cors) GetAllowedHeaders() []string {
	return []string{"Content-Type", "Authorization", "HX-Request"}
}
