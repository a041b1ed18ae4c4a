package main

import (
	"github.com/Akhila-1703/CompetitorTracker/cmd/cmd"
	"github.com/Akhila-1703/CompetitorTracker/internal/logger"
)

func main() {
	logger.Init()
	cmd.Execute()
}
