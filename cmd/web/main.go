package main

import "xconfess_backend/internal/app"

func main() {
	app.Run()
}
