// Package main is the interactive realty client: a small shell over
// the authenticated API, driving login, listings, and favorites.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/atinyakov/RealtyClient/internal/api"
	"github.com/atinyakov/RealtyClient/internal/apierror"
	"github.com/atinyakov/RealtyClient/internal/config"
	"github.com/atinyakov/RealtyClient/internal/logger"
	"github.com/atinyakov/RealtyClient/internal/models"
	"github.com/atinyakov/RealtyClient/internal/session"
	"github.com/atinyakov/RealtyClient/internal/transport"
)

var (
	version   string
	buildDate string
)

// renderError prints a failure the way the UI guidelines ask for:
// authentication failures suggest logging in, missing resources say
// so, everything else shows the backend message.
func renderError(err error) {
	switch {
	case apierror.IsNotAuthenticated(err):
		fmt.Println("Not authenticated. Please run 'login <email> <password>'.")
	case apierror.IsNotFound(err):
		fmt.Println("Not found.")
	default:
		fmt.Println("Request failed:", err)
	}
}

// prompt reads one trimmed line after printing the label.
func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// promptInt keeps asking until a number (or nothing, when optional)
// is entered.
func promptInt(scanner *bufio.Scanner, label string, optional bool) *int {
	for {
		raw := prompt(scanner, label)
		if raw == "" && optional {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err == nil {
			return &n
		}
		fmt.Println("Please enter a number.")
	}
}

// promptRealty collects the fields of a new listing.
func promptRealty(scanner *bufio.Scanner) (models.RealtyCreate, bool) {
	var in models.RealtyCreate
	in.Title = prompt(scanner, "Title: ")
	in.Description = prompt(scanner, "Description: ")
	if price := promptInt(scanner, "Price: ", false); price != nil {
		in.Price = *price
	}
	if area := promptInt(scanner, "Area (m2): ", false); area != nil {
		in.Area = *area
	}
	in.City = prompt(scanner, "City: ")
	in.State = prompt(scanner, "State: ")

	switch strings.ToUpper(prompt(scanner, "Type (apartment/house/commercial): ")) {
	case "APARTMENT":
		in.Type = models.Apartment
		in.Floor = promptInt(scanner, "Floor: ", false)
		in.Rooms = promptInt(scanner, "Rooms: ", false)
	case "HOUSE":
		in.Type = models.House
	case "COMMERCIAL":
		in.Type = models.Commercial
	default:
		fmt.Println("Unknown realty type.")
		return in, false
	}
	in.IsActive = true
	// The backend expects a list of uploaded image references; image
	// upload itself is out of the client's hands, so send an empty one.
	in.Images = []models.ImageCreate{}
	return in, true
}

// promptRealtyUpdate collects the edited fields of a listing; empty
// input keeps the current value. The listing type is not editable, so
// the current one rides along as the backend requires.
func promptRealtyUpdate(scanner *bufio.Scanner, realtyType models.RealtyType) models.RealtyUpdate {
	in := models.RealtyUpdate{Type: realtyType}
	if title := prompt(scanner, "Title (empty to keep): "); title != "" {
		in.Title = &title
	}
	if description := prompt(scanner, "Description (empty to keep): "); description != "" {
		in.Description = &description
	}
	in.Price = promptInt(scanner, "Price (empty to keep): ", true)
	in.Area = promptInt(scanner, "Area (empty to keep): ", true)
	if city := prompt(scanner, "City (empty to keep): "); city != "" {
		in.City = &city
	}
	if state := prompt(scanner, "State (empty to keep): "); state != "" {
		in.State = &state
	}
	if realtyType == models.Apartment {
		in.Floor = promptInt(scanner, "Floor (empty to keep): ", true)
		in.Rooms = promptInt(scanner, "Rooms (empty to keep): ", true)
	}
	return in
}

// printRealtyList renders one line per listing.
func printRealtyList(items []models.RealtyShort, total int) {
	for _, item := range items {
		line := fmt.Sprintf("#%d  %s — %s, %d", item.ID, item.Title, item.City, item.Price)
		if item.IsFavorite != nil && *item.IsFavorite {
			line += "  ★"
		}
		fmt.Println(line)
	}
	fmt.Printf("%d of %d listings\n", len(items), total)
}

// repl runs the interactive shell loop.
func repl(svc *api.Service, store *session.Store) {
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("realty> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login <email> <password>, register <username> <email> <phone> <password>,")
			fmt.Println("  list [city], get <id>, add, edit <id>, delete <id>, fav, fav-add <id>, fav-rm <id>, me, my, whoami, logout, exit")
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			if _, err := svc.TokenByPassword(ctx, args[1], args[2]); err != nil {
				renderError(err)
				continue
			}
			if identity := store.Identity(); identity != nil {
				fmt.Println("Logged in as", identity.Username)
			} else {
				fmt.Println("Logged in")
			}
		case "register":
			if len(args) < 5 {
				fmt.Println("Usage: register <username> <email> <phone> <password>")
				continue
			}
			if _, err := svc.TokenByRegister(ctx, args[1], args[2], args[3], args[4]); err != nil {
				renderError(err)
				continue
			}
			fmt.Println("Registered and logged in")
		case "list":
			filter := models.RealtyFilter{Limit: 20}
			if len(args) > 1 {
				filter.City = args[1]
			}
			items, total, err := svc.ListRealty(ctx, filter)
			if err != nil {
				renderError(err)
				continue
			}
			printRealtyList(items, total)
		case "get":
			id, ok := parseID(args, "get <id>")
			if !ok {
				continue
			}
			realty, err := svc.GetRealty(ctx, id)
			if err != nil {
				renderError(err)
				continue
			}
			fmt.Printf("#%d %s\n%s\n%s, %s — %d (%d m2)\nImages: %d\n",
				realty.ID, realty.Title, realty.Description,
				realty.City, realty.State, realty.Price, realty.Area, len(realty.Images))
		case "add":
			in, ok := promptRealty(scanner)
			if !ok {
				continue
			}
			created, err := svc.CreateRealty(ctx, in)
			if err != nil {
				renderError(err)
				continue
			}
			fmt.Printf("Created listing #%d\n", created.ID)
		case "edit":
			id, ok := parseID(args, "edit <id>")
			if !ok {
				continue
			}
			current, err := svc.GetRealty(ctx, id)
			if err != nil {
				renderError(err)
				continue
			}
			updated, err := svc.UpdateRealty(ctx, id, promptRealtyUpdate(scanner, current.Type))
			if err != nil {
				renderError(err)
				continue
			}
			fmt.Printf("Updated listing #%d\n", updated.ID)
		case "delete":
			id, ok := parseID(args, "delete <id>")
			if !ok {
				continue
			}
			if err := svc.DeleteRealty(ctx, id); err != nil {
				renderError(err)
				continue
			}
			fmt.Println("Listing deleted")
		case "fav":
			items, total, err := svc.Favorites(ctx)
			if err != nil {
				renderError(err)
				continue
			}
			printRealtyList(items, total)
		case "fav-add":
			id, ok := parseID(args, "fav-add <id>")
			if !ok {
				continue
			}
			if err := svc.AddFavorite(ctx, id); err != nil {
				renderError(err)
				continue
			}
			fmt.Println("Added to favorites")
		case "fav-rm":
			id, ok := parseID(args, "fav-rm <id>")
			if !ok {
				continue
			}
			if err := svc.RemoveFavorite(ctx, id); err != nil {
				renderError(err)
				continue
			}
			fmt.Println("Removed from favorites")
		case "me":
			user, err := svc.Profile(ctx)
			if err != nil {
				renderError(err)
				continue
			}
			fmt.Printf("#%d %s <%s> %s\n", user.ID, user.Username, user.Email, user.Phone)
		case "my":
			items, err := svc.MyRealty(ctx)
			if err != nil {
				renderError(err)
				continue
			}
			printRealtyList(items, len(items))
		case "whoami":
			if identity := store.Identity(); identity != nil {
				fmt.Printf("%s (id %s)\n", identity.Username, identity.ID)
			} else if store.IsLoggedIn() {
				fmt.Println("Logged in (identity unavailable)")
			} else {
				fmt.Println("Not logged in")
			}
		case "logout":
			if err := svc.Logout(); err != nil {
				fmt.Println("Logout failed:", err)
				continue
			}
			fmt.Println("Logged out")
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// parseID extracts a numeric id argument, printing usage on failure.
func parseID(args []string, usage string) (int, bool) {
	if len(args) < 2 {
		fmt.Println("Usage:", usage)
		return 0, false
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("Usage:", usage)
		return 0, false
	}
	return id, true
}

// main parses flags, wires the client stack, and starts the shell.
func main() {
	var (
		configPath  string
		baseURL     string
		storagePath string
		showVer     bool
	)

	flag.StringVar(&configPath, "config", "", "path to JSON config file")
	flag.StringVar(&configPath, "c", "", "path to JSON config file (shorthand)")
	flag.StringVar(&baseURL, "url", "", "backend base URL (overrides config)")
	flag.StringVar(&storagePath, "storage", "", "token storage file (overrides config)")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Realty Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	options, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	if baseURL != "" {
		options.BaseURL = baseURL
	}
	if storagePath != "" {
		options.StoragePath = storagePath
	}

	zapLogger, err := logger.New(options.LogLevel)
	if err != nil {
		log.Fatalf("cannot init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	storage, err := session.NewFileStorage(options.StoragePath)
	if err != nil {
		zapLogger.Fatal("cannot open token storage", zap.Error(err))
	}
	store := session.NewStore(storage)

	httpClient := &http.Client{Timeout: options.Timeout}
	pipeline := transport.NewPipeline(options.BaseURL, httpClient, store, zapLogger)
	svc := api.NewService(pipeline, store)

	if identity := store.Identity(); identity != nil {
		fmt.Println("Welcome back,", identity.Username)
	}

	repl(svc, store)
}
