package main

import "github.com/dkolesnikov/tasklist/internal/useradmin"

func main() {
	useradmin.Execute()
}
