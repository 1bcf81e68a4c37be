package main

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/km-arc/hhcontainer/framework/app"
	"github.com/km-arc/hhcontainer/framework/config"
	"github.com/km-arc/hhcontainer/framework/container"
	gohttp "github.com/km-arc/hhcontainer/framework/http"
	"github.com/km-arc/hhcontainer/framework/modules"
	"github.com/km-arc/hhcontainer/framework/routing"
)

// Greeter is built by the container without an explicit binding: its
// constructor parameters come from named parameter factories.
type Greeter struct {
	Salutation string
	App        string
}

func NewGreeter(salutation, app string) *Greeter {
	return &Greeter{Salutation: salutation, App: app}
}

func (g *Greeter) Greet(name string) string {
	return fmt.Sprintf("%s, %s! (from %s)", g.Salutation, name, g.App)
}

// GreetingModule supplies the Greeter constructor parameters.
type GreetingModule struct{}

func (GreetingModule) Provide(c *container.Container) error {
	c.Parameters("Greeter", "salutation", func(*container.Container) (any, error) {
		return "Hello", nil
	})
	c.For("Greeter").Param("app").Give(func(c *container.Container) (any, error) {
		cfg, err := container.Resolve[*config.Config](c, modules.ConfigID)
		if err != nil {
			return nil, err
		}
		return cfg.App.Name, nil
	})
	return nil
}

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := application.Define("Greeter", NewGreeter, "salutation", "app"); err != nil {
		application.Logger().Fatal("define", zap.Error(err))
	}
	application.Register(container.ModuleOf[GreetingModule]())

	if err := application.Boot(); err != nil {
		application.Logger().Fatal("boot", zap.Error(err))
	}

	r, err := application.Router()
	if err != nil {
		application.Logger().Fatal("router", zap.Error(err))
	}

	// GET /greet/{name}
	r.Get("/greet/{name}", func(w http.ResponseWriter, req *http.Request) {
		res := gohttp.NewResponse(w)
		g, err := container.Resolve[*Greeter](application.Container, "Greeter")
		if err != nil {
			res.ServerError(err.Error())
			return
		}
		res.Success(map[string]any{"message": g.Greet(routing.Param(req, "name"))})
	})

	if err := application.Run(); err != nil {
		application.Logger().Fatal("run", zap.Error(err))
	}
}
