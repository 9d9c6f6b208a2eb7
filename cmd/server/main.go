package main

import "ocena/internal/app/server"

func main() {
	server.Run()
}
