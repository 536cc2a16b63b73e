package main

import "veriauth/internal/app"

func main() {
	app.Run()
}
