package main

import (
	"dermassist/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize the reference backend with all dependencies
	server, err := bootstrap.NewServer()
	if err != nil {
		logrus.Fatalf("Failed to initialize server: %v", err)
	}

	server.Run()
}
