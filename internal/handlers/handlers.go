package handlers

import "go-trading-backend/internal/config"

var cfg *config.Config

// Init gives the handlers their config. Called once from main before the
// router starts serving.
func Init(c *config.Config) {
	cfg = c
}
