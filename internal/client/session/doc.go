// Package session holds the client-side session: the authenticated user, the
// bearer token, and the derived collections (cart, favorites, orders, last
// placed order).
//
// # Overview
//
// The Store is the single owner of session state. Views read snapshots
// through its accessors and mutate state only through its operations, each of
// which calls the api.Client, applies the server's answer, and mirrors the
// durable fields (token, user, last order) to the storage.Repository.
//
// # Lifecycle
//
// A Store starts empty with the loading flag set. Hydrate restores the
// persisted snapshot and refreshes profile, cart, favorites and orders
// concurrently, each branch degrading to an empty result on its own failure;
// loading flips to false when the sequence finishes either way. Logout clears
// everything, in memory and on disk, and never talks to the server.
//
// # Authorization
//
// Token and user are co-dependent: any authorized call that observes a 401
// forces a logout, exactly once even with several calls in flight. Admin
// operations are additionally gated on the resolved user's role before any
// request is issued.
package session
