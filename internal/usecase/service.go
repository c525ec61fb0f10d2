package usecase

import (
	"github.com/roygutt18/quiteSlot/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	Wizard WizardService
}

func NewService(config *utils.Config, log *zap.Logger) *Service {
	wizardSvc := NewWizardService(config, log)
	return &Service{
		Auth:   NewAuthService(config, wizardSvc, log),
		Wizard: wizardSvc,
	}
}
