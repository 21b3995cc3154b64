package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"boomerang-server/ai"
	"boomerang-server/api"
	"boomerang-server/auth"
	"boomerang-server/config"
	"boomerang-server/console"
	"boomerang-server/edition"
	"boomerang-server/game"
	"boomerang-server/gameerrors"
	"boomerang-server/lobby"
	"boomerang-server/loghandler"
	"boomerang-server/message"
	"boomerang-server/storage"
	"boomerang-server/ws"
)

const usage = `usage:
  boomerang host  [-humans N] [-bots M] [-edition australia] [-behavior standard] [-name NAME] [-port 2048]
  boomerang join  -name NAME [-url ws://host:2048/ws] [-token TOKEN]
  boomerang token -name NAME [-ttl 24h]`

func main() {
	if err := godotenv.Load(); err != nil {
		log.Print("No .env file found; using environment variables.")
	}
	cfg := config.Load()
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stderr, loghandler.ParseLevel(cfg.LogLevel))))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "host":
		err = runHost(ctx, cfg, os.Args[2:])
	case "join":
		err = runJoin(ctx, cfg, os.Args[2:])
	case "token":
		err = runToken(cfg, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		slog.Error("exiting", "tag", "main", "err", err)
		os.Exit(1)
	}
}

// hostOptions are the table choices made on the command line.
type hostOptions struct {
	Humans  int
	Bots    int
	Edition string
	Name    string
}

func runHost(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	opts := hostOptions{}
	fs.IntVar(&opts.Humans, "humans", 1, "human players, the host included")
	fs.IntVar(&opts.Bots, "bots", 1, "computer players")
	fs.StringVar(&opts.Edition, "edition", cfg.Edition, "edition to play")
	fs.StringVar(&cfg.BotBehavior, "behavior", cfg.BotBehavior, fmt.Sprintf("computer behavior %v", ai.Names()))
	fs.StringVar(&opts.Name, "name", "", "the host's display name")
	fs.IntVar(&cfg.HostPort, "port", cfg.HostPort, "port remote players join on")
	fs.Parse(args)

	if opts.Humans < 1 {
		return fmt.Errorf("%w: the host is a human player, -humans must be at least 1", gameerrors.ErrPlayerCount)
	}
	if cfg.BotSeed == 0 {
		cfg.BotSeed = time.Now().UnixNano()
	}

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Warn("storage unavailable, results will not be saved", "tag", "main", "err", err)
		store = nil
	}
	defer store.Close()

	if cfg.APIPort > 0 {
		srv := serveAPI(cfg, store)
		defer srv.Close()
	}

	var src lobby.Source
	if opts.Humans > 1 {
		verifier, err := joinVerifier(cfg)
		if err != nil {
			return err
		}
		hub := ws.NewHub(cfg, verifier, opts.Humans-1)
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", hub.ServeWS)
		srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.HostPort), Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("listener stopped", "tag", "main", "err", err)
			}
		}()
		defer srv.Close()
		slog.Info("waiting for players", "tag", "main", "addr", srv.Addr)
		src = hub
	}

	local := console.New(os.Stdin, os.Stdout)
	if _, err := hostGame(ctx, cfg, opts, local, src, store); err != nil {
		return err
	}

	if cfg.APIPort > 0 {
		slog.Info("game over, API still serving until interrupted", "tag", "main", "port", cfg.APIPort)
		<-ctx.Done()
	}
	return nil
}

// hostGame seats the players, plays one game and records the result.
func hostGame(ctx context.Context, cfg *config.Config, opts hostOptions, local message.Channel, src lobby.Source, store *storage.Store) (game.Result, error) {
	editions := edition.NewRegistry()
	edition.RegisterAll(editions, cfg.CatalogPath)
	ed, err := editions.Get(opts.Edition)
	if err != nil {
		return game.Result{}, err
	}
	rules := ed.Rules()
	if cfg.Rounds > 0 {
		rules.Rounds = cfg.Rounds
	}
	catalog, err := ed.Catalog()
	if err != nil {
		return game.Result{}, err
	}

	table, err := lobby.New(cfg, src).Fill(ctx, lobby.Plan{
		Rules:     rules,
		Humans:    opts.Humans,
		Computers: opts.Bots,
		Local:     local,
		LocalName: opts.Name,
	})
	if err != nil {
		return game.Result{}, err
	}
	defer table.Close()

	var fallback func() game.Decider
	if !cfg.AbortOnDisconnect {
		if fallback, err = lobby.Fallback(cfg.BotBehavior, cfg.BotSeed); err != nil {
			return game.Result{}, err
		}
	}

	session, err := game.NewSession(game.SessionConfig{
		Rules:       rules,
		Catalog:     catalog,
		Seats:       table.Seats,
		Scoresheets: ed.NewScoresheet,
		Rand:        rand.New(rand.NewSource(cfg.BotSeed)),
		Fallback:    fallback,
	})
	if err != nil {
		return game.Result{}, err
	}
	slog.Info("game starting", "tag", "main", "session", session.ID, "edition", ed.Name(), "players", len(session.Players))

	res, err := game.NewMachine(session).Run(ctx)
	if err != nil {
		return game.Result{}, err
	}
	res.Edition = ed.ID()

	changes, err := store.SaveResult(ctx, res)
	if err != nil {
		slog.Error("saving result failed", "tag", "main", "session", res.SessionID, "err", err)
	}
	for _, c := range changes {
		slog.Info("rating updated", "tag", "main", "player", c.Name, "before", c.Before, "after", c.After)
	}
	return res, nil
}

// joinVerifier picks how join tokens are checked: a JWKS endpoint, a
// shared secret, or not at all.
func joinVerifier(cfg *config.Config) (ws.TokenVerifier, error) {
	switch {
	case cfg.JWKSURL != "":
		v, err := auth.NewJWKSValidator(cfg.JWKSURL, "")
		if err != nil {
			return nil, err
		}
		return v, nil
	case cfg.JoinSecret != "":
		iss, err := auth.NewIssuer(cfg.JoinSecret, 0)
		if err != nil {
			return nil, err
		}
		return iss, nil
	default:
		slog.Warn("JOIN_SECRET and JWKS_URL are not set, anyone can join", "tag", "main")
		return nil, nil
	}
}

func serveAPI(cfg *config.Config, store *storage.Store) *http.Server {
	var reader api.Reader
	if store != nil {
		reader = store
	}
	mux := http.NewServeMux()
	api.NewHandler(cfg, reader).Routes(mux)
	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.APIPort), Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("API server stopped", "tag", "main", "err", err)
		}
	}()
	slog.Info("API listening", "tag", "main", "addr", srv.Addr)
	return srv
}

func runJoin(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	url := fs.String("url", fmt.Sprintf("ws://localhost:%d/ws", cfg.HostPort), "host websocket URL")
	name := fs.String("name", "", "your display name")
	token := fs.String("token", "", "join token from the host")
	fs.Parse(args)

	if *name == "" && *token == "" {
		return fmt.Errorf("%w: -name is required", gameerrors.ErrInvalidJoinName)
	}
	return ws.Join(ctx, *url, message.Join{Name: *name, Token: *token}, ws.ConsoleAnswerer(os.Stdin), os.Stdout)
}

func runToken(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	name := fs.String("name", "", "player name carried by the token")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	fs.Parse(args)

	issuer, err := auth.NewIssuer(cfg.JoinSecret, *ttl)
	if err != nil {
		return err
	}
	token, err := issuer.Issue(*name)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
