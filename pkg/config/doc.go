// Package config loads typed configuration structs from environment
// variables (caarlos0/env tags), reading a .env file first when present.
//
// Every struct type is parsed once and cached, so packages can call Load for
// their own Config type without coordinating with main:
//
//	var cfg catalog.Config
//	config.MustLoad(&cfg)
package config
