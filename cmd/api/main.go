package main

import (
	"fmt"
	"os"

	"github.com/prakharagrawal10/movie-api-backend/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
