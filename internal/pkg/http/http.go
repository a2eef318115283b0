package http

import (
	"fmt"
	"log"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.elastic.co/apm"
)

func SetupHttpEngine() *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	// one apm transaction per request
	app.Use(func(c *fiber.Ctx) error {
		tx := apm.DefaultTracer.StartTransaction(c.Method()+" "+c.Path(), "request")
		defer tx.End()

		c.SetUserContext(apm.ContextWithTransaction(c.UserContext(), tx))

		err := c.Next()
		tx.Result = strconv.Itoa(c.Response().StatusCode())
		return err
	})

	return app
}

func StartHttpServer(app *fiber.App, port string) {
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		log.Fatalf("failed to start http server: %v", err)
	}
}
