package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/shivesh0001/ppt-checker/internal/cli"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	os.Exit(cli.Run())
}
