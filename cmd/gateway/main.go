// cmd/gateway/main.go
package main

import (
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
)

func main() {
	storefrontServiceURL, _ := url.Parse(getEnv("STOREFRONT_SERVICE_URL", "http://localhost:8084"))
	storefrontProxy := httputil.NewSingleHostReverseProxy(storefrontServiceURL)

	http.Handle("/api/v1/storefront/", storefrontProxy)

	// Optionally host the page assets next to the API.
	if dir := getEnv("STATIC_DIR", ""); dir != "" {
		http.Handle("/", http.FileServer(http.Dir(dir)))
	}

	port := getEnv("PORT", "8080")
	log.Printf("Storefront gateway listening on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
