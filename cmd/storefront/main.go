// cmd/storefront/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"greengrove/internal/clients"
	"greengrove/internal/storefront"
)

func main() {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	ctx := context.Background()
	shutdown, err := initTracer(ctx)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer shutdown(ctx)

	apiURL := getEnv("PLANT_API_URL", "https://openapi.programming-hero.com/api")
	client := clients.NewPlantAPI(apiURL)
	svc := storefront.NewService(client)
	handler := storefront.NewHandler(svc)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	handler.RegisterRoutes(router)

	port := getEnv("PORT", "8084")
	fmt.Printf("🚀 Starting Storefront Service on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

// initTracer wires the OTLP trace exporter when an endpoint is configured;
// otherwise spans stay no-ops.
func initTracer(ctx context.Context) (func(context.Context) error, error) {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(sdkresource.NewSchemaless(
			attribute.String("service.name", "greengrove-storefront"),
		)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
