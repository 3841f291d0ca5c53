package server

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"
)

// Documents holds the rendered feed documents currently being served. The
// refresh loop replaces the whole set atomically so pollers never see a
// half-updated run.
type Documents struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewDocuments() *Documents {
	return &Documents{docs: make(map[string][]byte)}
}

// Replace swaps in the documents of a new run.
func (d *Documents) Replace(docs map[string][]byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs = docs
}

// Get returns one document by name, e.g. "feed.xml".
func (d *Documents) Get(name string) ([]byte, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	body, ok := d.docs[name]
	return body, ok
}

// Names lists the available documents in stable order.
func (d *Documents) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.docs))
	for name := range d.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type ServerConfig struct {
	// Documents to serve, shared with the refresh loop
	Documents *Documents
}

// Server returns a fiber.App serving the generated RSS documents
func Server(config *ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// Middleware to track the latency of each request
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		log.WithFields(log.Fields{
			"method":  c.Method(),
			"route":   c.Route().Path,
			"latency": time.Since(start),
		}).Info("Request")
		return err
	})

	app.Use(requestid.New(requestid.ConfigDefault))
	app.Use(compress.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(map[string]interface{}{
			"feeds": config.Documents.Names(),
		})
	})

	app.Get("/:name", func(c *fiber.Ctx) error {
		name := c.Params("name")
		if !strings.HasSuffix(name, ".xml") {
			return c.Status(fiber.StatusNotFound).SendString("Not found")
		}
		body, ok := config.Documents.Get(name)
		if !ok {
			return c.Status(fiber.StatusNotFound).SendString("No such feed")
		}
		c.Set(fiber.HeaderContentType, "application/rss+xml; charset=utf-8")
		return c.Send(body)
	})

	return app
}
