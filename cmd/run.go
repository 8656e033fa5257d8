package cmd

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"

	"github.com/tahfiz/tahfiz/internal/achievements"
	"github.com/tahfiz/tahfiz/internal/app"
	"github.com/tahfiz/tahfiz/internal/config"
	"github.com/tahfiz/tahfiz/internal/content"
	"github.com/tahfiz/tahfiz/internal/events"
	"github.com/tahfiz/tahfiz/internal/player"
	"github.com/tahfiz/tahfiz/internal/progression"
	"github.com/tahfiz/tahfiz/internal/quests"
	"github.com/tahfiz/tahfiz/internal/quiz"
	"github.com/tahfiz/tahfiz/internal/screens/home"
	"github.com/tahfiz/tahfiz/internal/store"
)

// game bundles everything wired up by loadGame, shared by the TUI and the
// plain CLI subcommands.
type game struct {
	store        *store.Store
	cfg          config.Config
	calc         *progression.Calculator
	bus          *events.Bus
	player       *player.State
	quests       *quests.Tracker
	achievements *achievements.Tracker
}

func (g *game) close() {
	g.store.Close()
}

// loadGame opens the store, loads the player, and attaches the trackers.
// A login event fires once per invocation, after the daily reset.
func loadGame(cmd *cobra.Command) (*game, error) {
	ctx := context.Background()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	cfg := config.Default()
	if tp, _ := cmd.Flags().GetString("tables"); tp != "" {
		tables, err := config.LoadTables(tp)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("load tables: %w", err)
		}
		cfg.Tables = tables
	}
	calc := progression.New(cfg.Tables)

	name, _ := cmd.Flags().GetString("player")
	if name == "" {
		if u, err := user.Current(); err == nil {
			name = u.Username
		} else {
			name = "player"
		}
	}

	players := st.Players()
	p, err := players.LoadOrCreate(ctx, name, name, cfg.Tables.Rules.DailyTestAttempts)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load player: %w", err)
	}
	if p.ApplyDailyReset(time.Now(), cfg.Tables.Rules.DailyTestAttempts) {
		if err := players.Save(ctx, p); err != nil {
			fmt.Fprintln(os.Stderr, "save daily reset:", err)
		}
	}

	progress, err := st.Quests().PlayerProgress(ctx, p.ID)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load quest progress: %w", err)
	}

	bus := events.NewBus()
	qt := quests.NewTracker(p.ID, cfg.Quests, progress, st.Quests())
	qt.Attach(bus)
	at := achievements.NewTracker(p, cfg.Achievements)
	at.Attach(bus)

	bus.Dispatch(events.Event{Kind: events.KindLogin})
	if err := players.Save(ctx, p); err != nil {
		fmt.Fprintln(os.Stderr, "save player:", err)
	}

	return &game{
		store:        st,
		cfg:          cfg,
		calc:         calc,
		bus:          bus,
		player:       p,
		quests:       qt,
		achievements: at,
	}, nil
}

// loadPack resolves the corpus pack from --pack or TAHFIZ_PACK.
func loadPack(cmd *cobra.Command) (*content.Pack, error) {
	path, _ := cmd.Flags().GetString("pack")
	if path == "" {
		path = os.Getenv("TAHFIZ_PACK")
	}
	if path == "" {
		return nil, fmt.Errorf("no corpus pack: pass --pack or set TAHFIZ_PACK")
	}
	return content.LoadPack(path)
}

// runApp wires the full game and launches the TUI.
func runApp(cmd *cobra.Command) error {
	g, err := loadGame(cmd)
	if err != nil {
		return err
	}
	defer g.close()

	pack, err := loadPack(cmd)
	if err != nil {
		return err
	}

	players := g.store.Players()
	results := g.store.Results(g.player.ID)

	engine := quiz.NewEngine(quiz.Options{
		Registry:    quiz.DefaultRegistry(),
		Bus:         g.bus,
		Calc:        g.calc,
		Content:     pack,
		Players:     players,
		Results:     results,
		TypeConfigs: g.cfg.TypeConfigs,
	})

	return app.Run(app.Options{
		Home: home.Deps{
			Engine:       engine,
			Pack:         pack,
			Player:       g.player,
			Calc:         g.calc,
			Quests:       g.quests,
			Achievements: g.achievements,
			Players:      players,
			Results:      results,
			Events:       g.cfg.LiveEvents,
		},
	})
}
