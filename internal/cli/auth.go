package cli

import (
	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
)

type LoginCmd struct {
	Email    string `short:"e" help:"Account email."`
	Password string `help:"Account password. Prompted when omitted." env:"NIYAM_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *Context) error {
	if err := ctx.ask("Email", &c.Email, false); err != nil {
		return err
	}
	if err := ctx.ask("Password", &c.Password, true); err != nil {
		return err
	}

	sess, err := ctx.Auth.Login(ctx.Ctx, ctx.Session, domain.Credentials{
		Email:    c.Email,
		Password: c.Password,
	})
	if err != nil {
		return err
	}

	name := sess.User.DisplayName()
	if name == "" {
		name = c.Email
	}
	ctx.printf("Welcome back, %s!\n", name)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Auth.Logout(ctx.Ctx, ctx.Session); err != nil {
		return err
	}
	ctx.println("Signed out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	if err := ctx.requireSession(); err != nil {
		return err
	}

	u := ctx.Session.Current().User
	if u == nil {
		ctx.println("Signed in (no profile stored)")
		return nil
	}
	ctx.println(stat("Name", u.DisplayName()))
	ctx.println(stat("Email", u.EmailAddress()))
	if u.Number != "" {
		ctx.println(stat("Phone", u.Number))
	}
	return nil
}

type RegisterSendOTPCmd struct {
	Name     string `short:"n" help:"Full name."`
	Email    string `short:"e" help:"Account email."`
	Number   string `help:"10-digit phone number."`
	Password string `help:"Password, at least 6 characters. Prompted when omitted." env:"NIYAM_PASSWORD"`
}

func (c *RegisterSendOTPCmd) Run(ctx *Context) error {
	for _, f := range []struct {
		title  string
		value  *string
		secret bool
	}{
		{"Full name", &c.Name, false},
		{"Email", &c.Email, false},
		{"Phone number", &c.Number, false},
		{"Password", &c.Password, true},
	} {
		if err := ctx.ask(f.title, f.value, f.secret); err != nil {
			return err
		}
	}

	err := ctx.Auth.SendRegistrationOTP(ctx.Ctx, domain.Registration{
		Name:     c.Name,
		Email:    c.Email,
		Number:   c.Number,
		Password: c.Password,
	})
	if err != nil {
		return err
	}
	ctx.printf("A 6-digit code was sent to %s. Run `niyam register verify` with it.\n", c.Email)
	return nil
}

type RegisterVerifyCmd struct {
	Email string `short:"e" help:"Email the code was sent to."`
	OTP   string `arg:"" optional:"" help:"6-digit code."`
}

func (c *RegisterVerifyCmd) Run(ctx *Context) error {
	if err := ctx.ask("Email", &c.Email, false); err != nil {
		return err
	}
	if err := ctx.ask("Verification code", &c.OTP, false); err != nil {
		return err
	}

	sess, err := ctx.Auth.VerifyRegistration(ctx.Ctx, ctx.Session, domain.RegistrationVerification{
		Email: c.Email,
		OTP:   c.OTP,
	})
	if err != nil {
		return err
	}

	if sess.Authenticated() {
		ctx.println("Account verified, you are signed in.")
		return nil
	}
	ctx.println("Account verified. Run `niyam login` to sign in.")
	return nil
}

type RegisterCmd struct {
	SendOTP RegisterSendOTPCmd `cmd:"" name:"send-otp" help:"Start a registration or resend its code." default:"1"`
	Verify  RegisterVerifyCmd  `cmd:"" help:"Complete a registration with the emailed code."`
}

type PasswordSendOTPCmd struct {
	Email string `short:"e" help:"Account email."`
}

func (c *PasswordSendOTPCmd) Run(ctx *Context) error {
	if err := ctx.ask("Email", &c.Email, false); err != nil {
		return err
	}
	if err := ctx.Auth.SendPasswordResetOTP(ctx.Ctx, c.Email); err != nil {
		return err
	}
	ctx.printf("A reset code was sent to %s. Run `niyam password reset` with it.\n", c.Email)
	return nil
}

type PasswordResetCmd struct {
	Email       string `short:"e" help:"Account email."`
	OTP         string `arg:"" optional:"" help:"6-digit code."`
	NewPassword string `name:"new-password" help:"New password. Prompted when omitted." env:"NIYAM_NEW_PASSWORD"`
}

func (c *PasswordResetCmd) Run(ctx *Context) error {
	if err := ctx.ask("Email", &c.Email, false); err != nil {
		return err
	}
	if err := ctx.ask("Reset code", &c.OTP, false); err != nil {
		return err
	}
	if err := ctx.ask("New password", &c.NewPassword, true); err != nil {
		return err
	}

	err := ctx.Auth.ResetPassword(ctx.Ctx, domain.PasswordReset{
		Email:       c.Email,
		OTP:         c.OTP,
		NewPassword: c.NewPassword,
	})
	if err != nil {
		return err
	}
	ctx.println("Password updated. Run `niyam login` with the new password.")
	return nil
}

type PasswordCmd struct {
	SendOTP PasswordSendOTPCmd `cmd:"" name:"send-otp" help:"Email a password reset code."`
	Reset   PasswordResetCmd   `cmd:"" help:"Set a new password with the emailed code."`
}
