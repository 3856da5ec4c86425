// Package docs serves the OpenAPI description of the HTTP API.
package docs

import (
	_ "embed"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openapiYAML []byte

// Document returns the parsed OpenAPI document.
func Document() (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(openapiYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	return doc, nil
}

// Register mounts GET /api-docs (JSON) and GET /api-docs/openapi.yaml.
func Register(app *fiber.App) error {
	doc, err := Document()
	if err != nil {
		return err
	}
	app.Get("/api-docs", func(c *fiber.Ctx) error {
		return c.JSON(doc)
	})
	app.Get("/api-docs/openapi.yaml", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(openapiYAML)
	})
	return nil
}
