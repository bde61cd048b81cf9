package main

import "reconnect/cmd/rc/root"

func main() {
	root.Execute()
}
