package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/reel/internal/catalog"
	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/favorites"
	"github.com/mmcdole/reel/internal/log"
	"github.com/mmcdole/reel/internal/store"
	"github.com/mmcdole/reel/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	var (
		showVersion bool
		listOnly    bool
		reset       bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&listOnly, "list", false, "print My List and exit")
	flag.BoolVar(&reset, "reset", false, "erase My List and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("reel %s\n", Version)
		return
	}

	if err := run(listOnly, reset); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(listOnly, reset bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting reel", "version", Version)

	kv, err := store.NewKVStore(cfg.Favorites.DBPath)
	if err != nil {
		// My List still works for this session, it just won't survive exit
		logger.Warn("favorites database unavailable, using memory", "path", cfg.Favorites.DBPath, "error", err)
		kv = store.NewMemoryStore()
	}
	defer kv.Close()

	if reset {
		if err := kv.Clear(); err != nil {
			return fmt.Errorf("failed to reset My List: %w", err)
		}
		fmt.Println("✓ My List erased")
		return nil
	}

	events := make(chan domain.FavoritesEvent, 16)
	provider := favorites.NewProvider(kv,
		favorites.WithStorageKey(cfg.Favorites.StorageKey),
		favorites.WithLogger(logger),
		favorites.WithObserver(tui.NewChannelObserver(events)),
	)
	ctx := provider.Context(context.Background())

	if listOnly || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printFavorites(ctx, os.Stdout)
	}

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	client := catalog.NewCachedCatalog(newCatalogClient(cfg, logger), cfg.Catalog.CacheTTL, logger)

	model, err := tui.NewModel(ctx, client,
		tui.WithEvents(events),
		tui.WithPosterSize(cfg.UI.PosterSize),
		tui.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create UI: %w", err)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func newCatalogClient(cfg *config.Config, logger *slog.Logger) *catalog.Client {
	return catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, logger,
		catalog.WithLanguage(cfg.Catalog.Language),
		catalog.WithImageBaseURL(cfg.Catalog.ImageBaseURL),
		catalog.WithRateLimit(cfg.Catalog.RequestsPerSecond),
	)
}

// printFavorites writes My List as plain text, one title per line
func printFavorites(ctx context.Context, w io.Writer) error {
	favs, err := favorites.FromContext(ctx)
	if err != nil {
		return err
	}

	entries := favs.Favorites()
	if len(entries) == 0 {
		fmt.Fprintln(w, "My List is empty")
		return nil
	}

	for _, e := range entries {
		line := e.GetTitle()
		if year := e.Info().Year(); year > 0 {
			line = fmt.Sprintf("%s (%d)", line, year)
		}
		if e.Kind() == domain.KindSeries {
			line += " [TV]"
		}
		fmt.Fprintf(w, "%d\t%s\n", e.GetID(), line)
	}
	return nil
}

// runSetupFlow asks for a catalog API key, checks it and saves it
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Reel!")
	fmt.Println()
	fmt.Println("Reel needs a TMDB API key (https://www.themoviedb.org/settings/api).")

	for {
		apiKey, err := promptSecret("API key: ")
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		cfg.Catalog.APIKey = apiKey
		fmt.Println()
		if err := verifyWithSpinner(newCatalogClient(cfg, logger)); err != nil {
			fmt.Printf("\n✗ Could not verify key: %v\n", err)
			if !catalog.IsAuthError(err) {
				return err
			}
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run reel again to start the application.")

	return nil
}

// promptSecret reads a line without echo when stdin is a terminal
func promptSecret(prompt string) (string, error) {
	fmt.Print(prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		b, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	input, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// verifyWithSpinner makes one catalog request with a visual spinner
func verifyWithSpinner(client *catalog.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		_, err := client.Genres(ctx)
		resultCh <- err
	}()

	frames := spinner.MiniDot.Frames
	frame := 0
	fmt.Printf("\r%s Checking API key...", frames[frame])

	ticker := time.NewTicker(spinner.MiniDot.FPS)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ API key accepted")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Checking API key...", frames[frame%len(frames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("verification timed out")
		}
	}
}
