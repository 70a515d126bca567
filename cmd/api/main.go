package main

import (
	appfx "github.com/joserrivase/Accountability-Buddy-sub000/internal/fx"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
