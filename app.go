package session

import "github.com/gofiber/fiber/v2"

// App is the composition root. Construction order is fixed: config,
// then store, then the accounts bridge, then (on Mount) the view
// controller. Each stage refuses to build on top of a missing earlier
// stage, so a process with partially available context never starts.
type App struct {
	config     *Config
	store      *Store
	accounts   *Accounts
	controller *Controller
	logger     Logger
}

// NewApp validates configuration and builds the store and accounts
// bridge in order. Any missing dependency aborts construction.
func NewApp(cfg *Config, provider Provider) (*App, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := NewStore()

	accounts, err := NewAccounts(provider, store)
	if err != nil {
		return nil, err
	}

	return &App{
		config:   cfg,
		store:    store,
		accounts: accounts,
		logger:   defLogger{},
	}, nil
}

func (a *App) WithLogger(logger Logger) *App {
	a.logger = logger
	a.accounts.WithLogger(logger)
	return a
}

func (a *App) Config() *Config {
	return a.config
}

func (a *App) Store() *Store {
	return a.store
}

func (a *App) Accounts() *Accounts {
	return a.accounts
}

// Mount registers the session views on srv. It is the last stage of
// construction: the controller is only built here, after the store and
// accounts bridge already exist.
func (a *App) Mount(srv *fiber.App) *Controller {
	a.controller = RegisterRoutes(srv,
		WithAccounts(a.accounts),
		WithControllerLogger(a.logger),
		WithDebug(a.config.Debug),
	)
	return a.controller
}
