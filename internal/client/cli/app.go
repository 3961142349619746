package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/dmitrijs2005/bitecart/internal/client/api"
	"github.com/dmitrijs2005/bitecart/internal/client/config"
	"github.com/dmitrijs2005/bitecart/internal/client/session"
	"github.com/dmitrijs2005/bitecart/internal/client/storage"
	"github.com/dmitrijs2005/bitecart/internal/logging"

	_ "modernc.org/sqlite"
)

// Tab identifies the active screen of the REPL.
type Tab string

const (
	TabProfile   Tab = "profile"
	TabOrders    Tab = "orders"
	TabFavorites Tab = "favorites"
	TabSettings  Tab = "settings"
	TabAdmin     Tab = "admin"
	TabMessages  Tab = "messages"
)

type App struct {
	config *config.Config
	store  *session.Store
	log    logging.Logger
	db     *sql.DB
	reader *bufio.Reader
	tab    Tab
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repo, db, err := storage.Open(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "failed to open session database", "dsn", c.DatabaseDSN, "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerAddr, log)
	store := session.New(apiClient, repo, log)

	return &App{
		config: c,
		store:  store,
		log:    log,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		tab:    TabProfile,
	}, nil
}

// Run restores the persisted session, bounded by the configured timeout,
// and hands control to the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	hctx, cancel := context.WithTimeout(ctx, a.config.HydrateTimeout)
	a.store.Hydrate(hctx)
	cancel()

	a.Root(ctx)
}

// Close releases the local database handle.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error(context.Background(), "failed to close session database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.IsLoggedIn()
}

func (a *App) isAdmin() bool {
	return a.store.IsAdmin()
}

// getStatus builds the prompt decoration: user name plus the active tab.
func (a *App) getStatus() string {
	s := ""
	if u := a.store.User(); u != nil && u.Name != "" {
		s = u.Name + " "
	}
	s = s + string(a.tab)
	return fmt.Sprintf("(%s)", s)
}
