package http

import (
	"github.com/hvmartinez/coordsim/internal/adapters/valkey"
	"github.com/hvmartinez/coordsim/internal/core/usecases"
	"github.com/hvmartinez/coordsim/internal/pkg/config"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Classifier *usecases.ClassifierService
	Cache      *valkey.Cache
	Simulator  config.SimulatorConfig
}
