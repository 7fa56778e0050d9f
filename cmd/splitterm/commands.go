package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"splitcaster/internal/core/format"
	"splitcaster/internal/core/model"
	"splitcaster/internal/core/timekeeper"
	"splitcaster/internal/platform"
	"splitcaster/internal/storage"
	"splitcaster/internal/ui/board"
	"splitcaster/internal/ui/preferences"
	"splitcaster/internal/ui/term"

	tea "github.com/charmbracelet/bubbletea"
)

type session struct {
	configDir string
	settings  preferences.Settings
	routePath string
}

// loadSession resolves the config directory, settings and route path.
// A non-empty routeFlag overrides the route named in settings.
func loadSession(routeFlag string) (session, error) {
	configDir, err := platform.NewService().AppConfigDir(appName)
	if err != nil {
		return session{}, fmt.Errorf("config directory: %w", err)
	}
	settings, err := storage.LoadSettings(configDir)
	if err != nil {
		log.Printf("settings: %v (using defaults)", err)
	}
	routePath := storage.RoutePath(configDir, settings)
	if routeFlag != "" {
		routePath = routeFlag
	}
	return session{configDir: configDir, settings: settings, routePath: routePath}, nil
}

func runTimer(ctx context.Context, routeFlag string, recordHistory bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sess, err := loadSession(routeFlag)
	if err != nil {
		return err
	}

	if logFile, err := tea.LogToFile(filepath.Join(sess.configDir, "splitterm.log"), "splitterm"); err == nil {
		defer logFile.Close()
	}

	store := storage.NewRouteStore(sess.routePath)
	route, err := storage.LoadRouteOrDefault(sess.routePath)
	if err != nil {
		log.Printf("route %s: %v (using the bundled route)", sess.routePath, err)
	}

	// Keys arrive through the terminal, so no capture permission is needed.
	keeper := timekeeper.New(model.NewTimerState(model.PhaseStopped, route), sess.settings.TimeKeeperConfig(), nil, store)
	defer keeper.Stop()

	if recordHistory {
		history, err := storage.OpenHistory(storage.HistoryPath(sess.configDir))
		if err != nil {
			log.Printf("history disabled: %v", err)
		} else {
			finished := keeper.Subscribe(64)
			recorded := make(chan struct{})
			go func() {
				defer close(recorded)
				history.RecordFinishedRuns(ctx, finished, func(err error) {
					log.Printf("record attempt: %v", err)
				})
			}()
					defer func() {
				keeper.Stop()
				<-recorded
				_ = history.Close()
			}()
		}
	}

	if sess.settings.WatchRouteFile {
		watcher, err := storage.NewRouteWatcher(store, keeper.ReplaceRoute, func(err error) {
			log.Print(err)
		})
		if err != nil {
			log.Printf("route watcher disabled: %v", err)
		} else {
			watcher.Start(ctx)
			defer watcher.Stop()
		}
	}

	events := keeper.Subscribe(256)
	program := tea.NewProgram(term.New(keeper, events, sess.settings.ShowMilliseconds), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func showRoute(out io.Writer, routeFlag string) error {
	sess, err := loadSession(routeFlag)
	if err != nil {
		return err
	}
	route, err := storage.LoadRoute(sess.routePath)
	if err != nil {
		return err
	}
	state := model.NewTimerState(model.PhaseStopped, route)
	_, err = io.WriteString(out, term.RenderSummary(board.Build(state, sess.settings.ShowMilliseconds)))
	return err
}

func showHistory(ctx context.Context, out io.Writer, routeFlag string, limit int, all bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sess, err := loadSession(routeFlag)
	if err != nil {
		return err
	}

	routeName := ""
	if !all {
		route, err := storage.LoadRoute(sess.routePath)
		if err != nil {
			return err
		}
		routeName = route.Name
	}

	history, err := storage.OpenHistory(storage.HistoryPath(sess.configDir))
	if err != nil {
		return err
	}
	defer history.Close()

	attempts, err := history.Recent(ctx, routeName, limit)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, formatHistory(attempts, sess.settings.ShowMilliseconds))
	return err
}

func formatHistory(attempts []storage.Attempt, showHundredths bool) string {
	if len(attempts) == 0 {
		return "No finished attempts yet.\n"
	}

	var b strings.Builder
	b.WriteString("Attempts\n")
	b.WriteString("────────\n")
	for _, attempt := range attempts {
		marker := " "
		if attempt.PersonalBest {
			marker = "★"
		}
		golds := ""
		if attempt.Golds > 0 {
			golds = fmt.Sprintf("  %d gold", attempt.Golds)
		}
		fmt.Fprintf(&b, "  %s %s  %-20s %10s%s\n",
			marker,
			attempt.FinishedAt.Local().Format(time.DateTime),
			attempt.Route,
			format.Elapsed(attempt.Total, showHundredths),
			golds,
		)
	}
	return b.String()
}
