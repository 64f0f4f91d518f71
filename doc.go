// Package session keeps a local, in-process belief about who is signed
// in against a remote identity provider.
//
// The core pieces:
//   - State is an explicit sum of Anonymous and Authenticated(User);
//     the authenticated flag is always derived from the presence of a
//     user, so the two can never disagree.
//   - Store is the single writer for the current State. Views read it
//     through Current and react to changes through Subscribe.
//   - Accounts bridges credentials entered by a user to the remote
//     provider (register, authenticate, terminate) and applies the
//     resulting mutation to the Store. A failed remote call never
//     touches the Store.
//   - Controller exposes the register/sign-in/sign-out forms over
//     Fiber and injects the current session into every render.
//
// The remote provider is opaque: this package delegates all credential
// validation, hashing, and token issuance to it. See provider/gotrue
// for the REST client.
package session
