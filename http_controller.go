package session

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
)

// RegisterRoutes mounts the session views on a fiber app.
func RegisterRoutes(app *fiber.App, opts ...ControllerOption) *Controller {
	controller := NewController(opts...)

	app.Get(controller.Routes.Home, controller.HomeShow)

	app.Get(controller.Routes.Login, controller.SignInShow)
	app.Post(controller.Routes.Login, controller.SignInPost)

	app.Get(controller.Routes.Register, controller.RegistrationShow)
	app.Post(controller.Routes.Register, controller.RegistrationCreate)

	app.Get(controller.Routes.Logout, controller.SignOutGet)

	return controller
}

type ControllerRoutes struct {
	Home     string
	Login    string
	Logout   string
	Register string
}

type ControllerViews struct {
	Home     string
	Login    string
	Register string
}

type Controller struct {
	Debug    bool
	Logger   Logger
	Accounts *Accounts
	Routes   *ControllerRoutes
	Views    *ControllerViews
}

type ControllerOption func(*Controller) *Controller

func WithAccounts(accounts *Accounts) ControllerOption {
	return func(c *Controller) *Controller {
		c.Accounts = accounts
		return c
	}
}

func WithControllerLogger(logger Logger) ControllerOption {
	return func(c *Controller) *Controller {
		c.Logger = logger
		return c
	}
}

func WithDebug(debug bool) ControllerOption {
	return func(c *Controller) *Controller {
		c.Debug = debug
		return c
	}
}

// NewController builds the view controller. The Accounts bridge must
// exist before any view that can read or mutate session state is
// constructed; a controller without one is a fatal wiring mistake, so
// this panics rather than deferring the failure to request time.
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		Logger: defLogger{},
		Routes: &ControllerRoutes{
			Home:     "/",
			Login:    "/login",
			Logout:   "/logout",
			Register: "/register",
		},
		Views: &ControllerViews{
			Home:     "home",
			Login:    "login",
			Register: "register",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Accounts == nil {
		panic("Missing Accounts in session controller...")
	}

	return c
}

func (a *Controller) render(ctx *fiber.Ctx, name string, data fiber.Map) error {
	return ctx.Render(name, MergeViewContext(a.Accounts.Store(), data))
}

func (a *Controller) HomeShow(ctx *fiber.Ctx) error {
	return a.render(ctx, a.Views.Home, fiber.Map{})
}

func (a *Controller) SignInShow(ctx *fiber.Ctx) error {
	return a.render(ctx, a.Views.Login, fiber.Map{
		"errors": nil,
		"record": nil,
	})
}

// SignInRequest payload
type SignInRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *Controller) SignInPost(ctx *fiber.Ctx) error {
	payload := new(SignInRequest)
	errs := map[string]string{}

	if err := ctx.BodyParser(payload); err != nil {
		errs["form"] = "Failed to parse form"
		a.Logger.Error("sign in parse payload", "error", err)
		return ctx.Status(fiber.StatusBadRequest).Render(a.Views.Login,
			MergeViewContext(a.Accounts.Store(), fiber.Map{
				"errors": errs,
				"record": payload,
			}))
	}

	if err := payload.Validate(); err != nil {
		return a.render(ctx, a.Views.Login, fiber.Map{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
		})
	}

	if a.Debug {
		fmt.Println("======= SESSION SIGN IN =")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	if _, err := a.Accounts.SignIn(ctx.UserContext(), payload.Email, payload.Password); err != nil {
		// the provider's message reaches the user verbatim; the prior
		// session state is untouched
		errs["authentication"] = err.Error()
		return a.render(ctx, a.Views.Login, fiber.Map{
			"errors": errs,
			"record": payload,
		})
	}

	return ctx.Redirect(a.Routes.Home, fiber.StatusSeeOther)
}

func (a *Controller) RegistrationShow(ctx *fiber.Ctx) error {
	return a.render(ctx, a.Views.Register, fiber.Map{
		"errors": map[string]string{},
		"record": RegisterRequest{},
	})
}

// RegisterRequest is the registration form payload. Format and
// strength of credentials are the provider's call; locally we only
// require presence and a matching confirmation.
type RegisterRequest struct {
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

// Validate will validate the payload
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(
			&r.ConfirmPassword,
			validation.Required,
			validation.By(ValidateStringEquals(r.Password)),
		),
	)
}

func (a *Controller) RegistrationCreate(ctx *fiber.Ctx) error {
	payload := new(RegisterRequest)
	errs := map[string]string{}

	if err := ctx.BodyParser(payload); err != nil {
		errs["form"] = "Failed to parse form"
		a.Logger.Error("register parse payload", "error", err)
		return ctx.Status(fiber.StatusBadRequest).Render(a.Views.Register,
			MergeViewContext(a.Accounts.Store(), fiber.Map{
				"errors": errs,
				"record": payload,
			}))
	}

	if err := payload.Validate(); err != nil {
		return a.render(ctx, a.Views.Register, fiber.Map{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
		})
	}

	if a.Debug {
		fmt.Println("======= SESSION REGISTER ")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	if _, err := a.Accounts.SignUp(ctx.UserContext(), payload.Email, payload.Password); err != nil {
		errs["registration"] = err.Error()
		return a.render(ctx, a.Views.Register, fiber.Map{
			"errors": errs,
			"record": payload,
		})
	}

	return ctx.Redirect(a.Routes.Home, fiber.StatusSeeOther)
}

func (a *Controller) SignOutGet(ctx *fiber.Ctx) error {
	if err := a.Accounts.SignOut(ctx.UserContext()); err != nil {
		errs := map[string]string{"signout": err.Error()}
		return a.render(ctx, a.Views.Home, fiber.Map{
			"errors": errs,
		})
	}

	return ctx.Redirect(a.Routes.Home, fiber.StatusTemporaryRedirect)
}

// ValidateStringEquals builds an ozzo rule asserting equality with a
// previously captured value, e.g. confirm password.
func ValidateStringEquals(expected string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != expected {
			return errors.New("values do not match")
		}
		return nil
	}
}

// FormatValidationErrorToMap flattens ozzo validation errors into a
// field -> message map for templates.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var verr validation.Errors
	if errors.As(err, &verr) {
		for field, ferr := range verr {
			out[field] = ferr.Error()
		}
		return out
	}

	out["payload"] = err.Error()
	return out
}
