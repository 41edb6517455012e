package main

import "aprovafacil/internal/app"

func main() {
	app.Run()
}
