package utils

import "go.uber.org/zap"

func NewLogger(env string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if env == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
