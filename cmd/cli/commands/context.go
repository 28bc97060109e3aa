package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/pkg/clients/ntfyclient"
	"github.com/choreworld/choreworld/pkg/core/rotation"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg        *config.Config
	Calculator *rotation.Calculator
	NtfyClient *ntfyclient.Client
	Logger     *zap.Logger
	Ctx        context.Context
}
