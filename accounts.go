package session

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/sync/singleflight"
)

// Accounts bridges user-entered credentials and the Store through the
// remote provider. It is the only component that mutates the Store:
// a successful remote call applies Set or Clear, a failed one leaves
// the prior state untouched. Nothing here retries; a failed attempt is
// terminal for that submission.
type Accounts struct {
	provider Provider
	store    *Store
	logger   Logger
	inflight singleflight.Group
}

// NewAccounts wires the bridge. Both dependencies must already exist;
// a missing one is a construction error, not something to detect at
// request time.
func NewAccounts(provider Provider, store *Store) (*Accounts, error) {
	if provider == nil {
		return nil, ErrProviderNotProvided
	}
	if store == nil {
		return nil, ErrStoreNotProvided
	}

	return &Accounts{
		provider: provider,
		store:    store,
		logger:   defLogger{},
	}, nil
}

func (a *Accounts) WithLogger(logger Logger) *Accounts {
	a.logger = logger
	return a
}

// Store exposes the session store for read access by views.
func (a *Accounts) Store() *Store {
	return a.store
}

// SignUp registers a new account with the provider and, on success,
// signs the session in as the returned user.
func (a *Accounts) SignUp(ctx context.Context, email, password string) (*User, error) {
	return a.submit(ctx, "register", email, password, a.provider.Register)
}

// SignIn authenticates existing credentials against the provider and,
// on success, replaces the session user.
func (a *Accounts) SignIn(ctx context.Context, email, password string) (*User, error) {
	return a.submit(ctx, "authenticate", email, password, a.provider.Authenticate)
}

// SignOut terminates the remote session and clears the local one. A
// provider rejection leaves the local session intact: failure must not
// silently sign the user out. SignOut on an anonymous session is a
// no-op.
func (a *Accounts) SignOut(ctx context.Context) error {
	user, ok := a.store.Current().User()
	if !ok {
		return nil
	}

	_, err, _ := a.inflight.Do("terminate:"+user.ID.String(), func() (any, error) {
		if err := a.provider.Terminate(ctx, user.AccessToken); err != nil {
			return nil, err
		}
		a.store.Clear()
		return nil, nil
	})

	if err != nil {
		a.logger.Error("sign out rejected", "user_id", user.ID, "error", err)
		return err
	}

	return nil
}

// submit runs one provider call and the single store mutation that
// follows it. Duplicate submissions of the same operation+email that
// arrive while the first is in flight collapse into that call and
// share its outcome, so a double-clicked form cannot register twice.
func (a *Accounts) submit(
	ctx context.Context,
	op, email, password string,
	call func(context.Context, string, string) (*Credentials, error),
) (*User, error) {
	if email == "" || password == "" {
		return nil, goerrors.New("email and password are required", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	v, err, shared := a.inflight.Do(op+":"+email, func() (any, error) {
		creds, err := call(ctx, email, password)
		if err != nil {
			return nil, err
		}

		user, err := UserFromCredentials(creds)
		if err != nil {
			return nil, err
		}

		a.store.Set(user)
		return user, nil
	})

	if err != nil {
		a.logger.Error("provider call failed", "op", op, "email", email, "error", err)
		return nil, err
	}

	if shared {
		a.logger.Debug("duplicate submission collapsed", "op", op, "email", email)
	}

	return v.(*User), nil
}
