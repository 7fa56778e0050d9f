package main

import (
	"context"
	"errors"
	"log"

	"splitcaster/internal/core/model"
	"splitcaster/internal/core/timekeeper"
	"splitcaster/internal/platform"
	"splitcaster/internal/storage"
	"splitcaster/internal/ui/board"
	"splitcaster/internal/ui/flash"
	"splitcaster/internal/ui/preferences"
	"splitcaster/internal/ui/splits"
	"splitcaster/internal/ui/tray"
	"splitcaster/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "SplitCaster"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("%v: activated the running instance", err)
		} else {
			log.Printf("single instance: %v", err)
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	configDir, err := platform.NewService().AppConfigDir(appName)
	if err != nil {
		log.Printf("config directory: %v", err)
		return
	}
	settings, err := storage.LoadSettings(configDir)
	if err != nil {
		log.Printf("settings: %v", err)
	}

	store := storage.NewRouteStore(storage.RoutePath(configDir, settings))
	route, err := storage.LoadRouteOrDefault(store.Path())
	if err != nil {
		log.Printf("route %s: %v (using the bundled route)", store.Path(), err)
	}

	initialPhase := model.PhaseStopped
	if settings.GlobalHotkey {
		initialPhase = model.PhaseNeedsPermission
	}
	keeper := timekeeper.New(model.NewTimerState(initialPhase, route), settings.TimeKeeperConfig(), nil, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	history, err := storage.OpenHistory(storage.HistoryPath(configDir))
	if err != nil {
		log.Printf("history disabled: %v", err)
	}
	recorded := make(chan struct{})
	if history != nil {
		finished := keeper.Subscribe(64)
		go func() {
			defer close(recorded)
			history.RecordFinishedRuns(ctx, finished, func(err error) {
				log.Printf("record attempt: %v", err)
			})
		}()
	} else {
		close(recorded)
	}

	fyneApp := app.NewWithID("com.splitcaster.app")
	fyneApp.SetIcon(resources.MustLogo("logo.svg"))
	desktopApp, _ := fyneApp.(desktop.App)

	splitsWindow := splits.New(fyneApp, appName, settings.ShowMilliseconds)
	if err := splitsWindow.SetSplitKey(settings.SplitKey); err != nil {
		log.Printf("split key: %v", err)
	}
	flashEngine := flash.New(flash.DefaultConfig(), splitsWindow.SetHighlight)
	keys := newKeyInput(keeper, splitsWindow)
	splitsWindow.SetOnCheckAgain(func() {
		keys.Apply(settings)
	})

	guard.OnActivate(func() {
		fyne.Do(splitsWindow.Show)
	})

	var watcher *storage.RouteWatcher
	startWatcher := func() {
		if watcher != nil || !settings.WatchRouteFile {
			return
		}
		created, err := storage.NewRouteWatcher(store, keeper.ReplaceRoute, func(err error) {
			log.Print(err)
		})
		if err != nil {
			log.Printf("route watcher disabled: %v", err)
			return
		}
		created.Start(ctx)
		watcher = created
	}
	stopWatcher := func() {
		if watcher != nil {
			watcher.Stop()
			watcher = nil
		}
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		if err := storage.SaveSettings(configDir, updated); err != nil {
			log.Printf("save settings: %v", err)
		}
		if updated.RouteFile != settings.RouteFile || updated.TickRate != settings.TickRate {
			log.Printf("route file and tick rate changes apply after a restart")
		}
		settings = updated

		splitsWindow.SetShowHundredths(settings.ShowMilliseconds)
		if err := splitsWindow.SetSplitKey(settings.SplitKey); err != nil {
			log.Printf("split key: %v", err)
		}
		keys.Apply(settings)
		if settings.WatchRouteFile {
			startWatcher()
		} else {
			stopWatcher()
		}
		splitsWindow.Update(keeper.Snapshot())
	})

	idleIcon := resources.MustLogo(trayIconName(model.PhaseStopped))
	runningIcon := resources.MustLogo(trayIconName(model.PhaseRunning))

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnShowTimer: func() {
			splitsWindow.Show()
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnReloadRoute: func() {
			reloaded, err := store.Load()
			if err != nil {
				log.Printf("reload route: %v", err)
				return
			}
			keeper.ReplaceRoute(reloaded)
		},
		OnQuit: func() {
			fyneApp.Quit()
		},
	})
	if desktopApp != nil {
		desktopApp.SetSystemTrayIcon(idleIcon)
	}
	trayManager.SetStatus(board.Status(keeper.Snapshot()))

	trayPhase := keeper.Snapshot().Phase
	updateTray := func(state model.TimerState) {
		fyne.Do(func() {
			trayManager.SetStatus(board.Status(state))
			trayManager.SetRunning(state.Phase == model.PhaseRunning)
			if desktopApp == nil || state.Phase == trayPhase {
				return
			}
			trayPhase = state.Phase
			if state.Phase == model.PhaseRunning {
				desktopApp.SetSystemTrayIcon(runningIcon)
			} else {
				desktopApp.SetSystemTrayIcon(idleIcon)
			}
		})
	}

	events := keeper.Subscribe(256)
	go func() {
		for event := range events {
			handleEvent(ctx, event, splitsWindow, flashEngine, updateTray)
		}
	}()

	// Global hotkeys must be registered from the main thread on macOS.
	fyneApp.Lifecycle().SetOnStarted(func() {
		keys.Apply(settings)
		startWatcher()
	})

	splitsWindow.Update(keeper.Snapshot())
	splitsWindow.Show()
	fyneApp.Run()

	keys.Stop()
	stopWatcher()
	flashEngine.Stop()
	keeper.Stop()
	<-recorded
	if history != nil {
		_ = history.Close()
	}
}

func handleEvent(ctx context.Context, event timekeeper.Event, splitsWindow *splits.Window, flashEngine *flash.Engine, updateTray func(model.TimerState)) {
	switch event.Type {
	case timekeeper.EventSaveError:
		log.Printf("save route: %s", event.Message)
		return
	case timekeeper.EventRouteLoaded:
		flashEngine.Stop()
	}

	splitsWindow.Update(event.State)
	if row, ok := goldRow(event); ok {
		flashEngine.Pulse(ctx, row)
	}
	updateTray(event.State)
}
