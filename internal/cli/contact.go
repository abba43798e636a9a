package cli

import (
	"github.com/comitanigiacomo/niyam-buddy/internal/core/domain"
)

type ContactCmd struct {
	Message string `arg:"" optional:"" help:"Message for the team. Prompted when omitted."`
	Name    string `help:"Sender name. Defaults to your profile."`
	Email   string `short:"e" help:"Reply address. Defaults to your profile."`
}

func (c *ContactCmd) Run(ctx *Context) error {
	if err := ctx.requireSession(); err != nil {
		return err
	}
	if err := ctx.ask("Message", &c.Message, false); err != nil {
		return err
	}

	err := ctx.Contact.Submit(ctx.Ctx, ctx.Session, domain.ContactMessage{
		Name:    c.Name,
		Email:   c.Email,
		Message: c.Message,
	})
	if err != nil {
		return err
	}
	ctx.println("Message sent. We will get back to you soon.")
	return nil
}

type LegalPrivacyCmd struct{}

func (c *LegalPrivacyCmd) Run(ctx *Context) error {
	return showLegal(ctx, "privacy")
}

type LegalTermsCmd struct{}

func (c *LegalTermsCmd) Run(ctx *Context) error {
	return showLegal(ctx, "terms")
}

func showLegal(ctx *Context, slug string) error {
	page, err := domain.LegalPageBySlug(slug)
	if err != nil {
		return err
	}
	ctx.println(RenderLegal(page))
	return nil
}

type LegalCmd struct {
	Privacy LegalPrivacyCmd `cmd:"" help:"Privacy policy." default:"1"`
	Terms   LegalTermsCmd   `cmd:"" help:"Terms of use."`
}
