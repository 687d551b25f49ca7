package main

import "hrconsole/internal/app/server"

func main() {
	server.Run()
}
