package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/roygutt18/quiteSlot/internal/calendar"
	"github.com/roygutt18/quiteSlot/internal/remote"
	"github.com/roygutt18/quiteSlot/internal/session"
	"github.com/roygutt18/quiteSlot/internal/wizard"
	"github.com/roygutt18/quiteSlot/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Bootstrap(ctx context.Context, sess *session.Session)
	StartAuth(ctx context.Context, sess *session.Session, phone string) error
	Resend(ctx context.Context, sess *session.Session) error
	VerifyCode(ctx context.Context, sess *session.Session, code, name string) error
	SaveName(ctx context.Context, sess *session.Session, name string) error
	RequestLogout(sess *session.Session) error
}

type authService struct {
	config *utils.Config
	wizard WizardService
	log    *zap.Logger
}

func NewAuthService(config *utils.Config, wizardSvc WizardService, log *zap.Logger) AuthService {
	return &authService{
		config: config,
		wizard: wizardSvc,
		log:    log,
	}
}

// Bootstrap loads the remote identity and the service catalog once per
// session. Failures are logged and tolerated: the wizard must stay
// interactive and simply behaves as logged-out / catalog-less.
func (s *authService) Bootstrap(ctx context.Context, sess *session.Session) {
	sess.Lock()
	done := sess.Bootstrapped
	sess.Unlock()
	if done {
		return
	}

	executed, _ := sess.Guard.Do("bootstrap", func() error {
		var identity *wizard.Identity
		if user, err := sess.Remote.Me(ctx); err != nil {
			s.log.Warn("Identity check failed", zap.String("session", sess.Token.String()), zap.Error(err))
		} else if user != nil {
			identity = identityFromUser(user)
		}

		var services []remote.Service
		var workingDays calendar.WorkingDays
		if cat, err := sess.Remote.GetCatalog(ctx); err != nil {
			s.log.Warn("Catalog load failed", zap.String("session", sess.Token.String()), zap.Error(err))
		} else {
			services = cat.Services
			workingDays = calendar.ParseWorkingDays(cat.WorkingDays)
		}

		sess.Lock()
		if identity != nil {
			sess.Machine.SetIdentity(identity)
		}
		if services != nil {
			sess.Services = services
		}
		if workingDays != nil {
			sess.WorkingDays = workingDays
		}
		sess.Bootstrapped = services != nil
		sess.Unlock()
		return nil
	})

	if executed {
		s.log.Info("Session bootstrapped", zap.String("session", sess.Token.String()))
	}
}

// StartAuth requests a one-time code for the phone number. On success the
// number is remembered for verification, the wizard moves to the code step
// and the resend cooldown starts. The cooldown never blocks this path: a
// user who mistyped their number can send to the corrected one right away.
func (s *authService) StartAuth(ctx context.Context, sess *session.Session, phone string) error {
	normalized := utils.NormalizePhone(phone)
	if normalized == "" {
		return invalidField("phone", "enter a valid phone number")
	}

	executed, err := sess.Guard.Do("auth-start", func() error {
		return sess.Remote.AuthStart(ctx, normalized)
	})
	if !executed {
		return nil
	}
	if err != nil {
		return err
	}

	sess.Lock()
	sess.PendingPhone = normalized
	sess.Machine.GoTo(wizard.StepOTP)
	sess.Resend.Start()
	sess.Unlock()

	s.log.Info("One-time code requested", zap.String("session", sess.Token.String()))
	return nil
}

// Resend re-requests a code for the number verification is pending on. Only
// this trigger is throttled by the cooldown.
func (s *authService) Resend(ctx context.Context, sess *session.Session) error {
	sess.Lock()
	phone := sess.PendingPhone
	cooling := sess.Resend.Active()
	sess.Unlock()

	if phone == "" {
		return ErrNoPendingPhone
	}
	if cooling {
		return ErrCooldownActive
	}
	return s.StartAuth(ctx, sess, phone)
}

// VerifyCode checks the one-time code (optionally setting the name in the
// same call) and installs the resulting identity. Routing afterwards follows
// the flow the user was in: a missing name detours through details, a
// finished login/booking entry resets to the mode screen, a cancel flow
// continues into the appointment list.
func (s *authService) VerifyCode(ctx context.Context, sess *session.Session, code, name string) error {
	code = strings.TrimSpace(code)
	if len(code) != s.config.OTP.Length {
		return invalidField("code", fmt.Sprintf("enter the full %d-digit code", s.config.OTP.Length))
	}

	sess.Lock()
	phone := sess.PendingPhone
	mode := sess.Machine.Mode()
	sess.Unlock()

	if phone == "" {
		return ErrNoPendingPhone
	}

	var user *remote.User
	executed, err := sess.Guard.Do("auth-verify", func() error {
		verified, err := sess.Remote.AuthVerify(ctx, phone, code, strings.TrimSpace(name))
		if err != nil {
			return err
		}
		user = verified
		return nil
	})
	if !executed {
		return nil
	}
	if err != nil {
		return err
	}

	identity := identityFromUser(user)

	sess.Lock()
	sess.Machine.SetIdentity(identity)
	sess.PendingPhone = ""

	if identity.Name == "" {
		sess.Machine.GoTo(wizard.StepDetails)
		sess.Unlock()
		return nil
	}

	var continueCancel bool
	switch {
	case mode == wizard.ModeLogin, mode == wizard.ModeBook && identity.Name != "":
		sess.ResetWizard()
	case mode == wizard.ModeBook:
		sess.Machine.GoTo(wizard.StepService)
	case mode == wizard.ModeCancel:
		sess.Machine.GoTo(wizard.StepCancelList)
		continueCancel = true
	}
	sess.Unlock()

	s.log.Info("User authenticated", zap.String("session", sess.Token.String()), zap.Int64("user", identity.ID))

	if continueCancel {
		return s.wizard.LoadCancelList(ctx, sess)
	}
	return nil
}

// SaveName stores the user's name via the profile endpoint, then either
// completes the login flow or continues into service selection.
func (s *authService) SaveName(ctx context.Context, sess *session.Session, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return invalidField("name", "enter a name")
	}

	executed, err := sess.Guard.Do("profile", func() error {
		return sess.Remote.UpdateProfile(ctx, name)
	})
	if !executed {
		return nil
	}
	if err != nil {
		return err
	}

	sess.Lock()
	if id := sess.Machine.Identity(); id != nil {
		id.Name = name
	}
	if sess.Machine.Mode() == wizard.ModeLogin {
		sess.ResetWizard()
	} else {
		sess.Machine.GoTo(wizard.StepService)
	}
	sess.Unlock()
	return nil
}

// RequestLogout raises the logout confirmation. The confirmed action ends the
// remote session, clears the identity and resets the wizard.
func (s *authService) RequestLogout(sess *session.Session) error {
	sess.Lock()
	authenticated := sess.Machine.Authenticated()
	sess.Unlock()
	if !authenticated {
		return ErrAuthRequired
	}

	sess.Confirm.Request("logout", wizard.Prompt{
		Title:        "Log out",
		Body:         "Are you sure you want to log out?",
		ConfirmLabel: "Yes, log out",
		DismissLabel: "Cancel",
	}, func(ctx context.Context) error {
		if err := sess.Remote.Logout(ctx); err != nil {
			return err
		}
		sess.Lock()
		sess.Machine.SetIdentity(nil)
		sess.ResetWizard()
		sess.Unlock()
		s.log.Info("User logged out", zap.String("session", sess.Token.String()))
		return nil
	})
	return nil
}

func identityFromUser(user *remote.User) *wizard.Identity {
	return &wizard.Identity{
		ID:    user.ID,
		Phone: user.Phone,
		Name:  user.Name,
		Email: user.Email,
	}
}
