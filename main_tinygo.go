//go:build tinygo

package main

import (
	"termsh/app"
	"termsh/hal"
)

func main() {
	app.Run(hal.New())
}
