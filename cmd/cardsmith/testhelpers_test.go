package main

import "github.com/smileynet/cardsmith/internal/config"

func defaultTestConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Runtime.APIKey = ""
	return cfg
}

func ptr[T any](v T) *T { return &v }
