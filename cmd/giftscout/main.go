package main

import (
	"giftscout/cmd/handlers"
	"giftscout/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
